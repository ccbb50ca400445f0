package taxonomy

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Overlay lists entries added on top of the built-in tables. Built-in
// entries cannot be removed.
type Overlay struct {
	Selectors        []string `yaml:"selectors"`
	SectionTitles    []string `yaml:"sectionTitles"`
	NoisePatterns    []string `yaml:"noisePatterns"`
	LandingFragments []string `yaml:"landingFragments"`
}

// Load reads a YAML overlay from path and returns a new taxonomy holding the
// built-in tables plus the overlay entries. An empty path yields Default().
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return New(o)
}

// New builds a taxonomy from the built-in tables and o.
func New(o Overlay) (*Taxonomy, error) {
	t, err := build(o)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	return t, nil
}
