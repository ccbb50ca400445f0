package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/wikitext/internal/render"
)

// FileConfig is the single-file configuration schema.
type FileConfig struct {
	Output struct {
		Path   string `yaml:"path" json:"path"`
		Format string `yaml:"format" json:"format"`
		Width  int    `yaml:"width" json:"width"`
		Copy   bool   `yaml:"copy" json:"copy"`
	} `yaml:"output" json:"output"`

	PDF struct {
		Path string `yaml:"path" json:"path"`
		Font string `yaml:"font" json:"font"`
	} `yaml:"pdf" json:"pdf"`

	Extract struct {
		Taxonomy    string        `yaml:"taxonomy" json:"taxonomy"`
		Readability bool          `yaml:"readability" json:"readability"`
		Interval    time.Duration `yaml:"interval" json:"interval"`
		Attempts    int           `yaml:"attempts" json:"attempts"`
	} `yaml:"extract" json:"extract"`

	Fetch struct {
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		Attempts     int           `yaml:"attempts" json:"attempts"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		IgnoreRobots bool          `yaml:"ignoreRobots" json:"ignoreRobots"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
		Bypass      bool          `yaml:"bypass" json:"bypass"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Flag defaults. File values replace a field only while it still holds
// its default.
const (
	DefaultFormat       = render.FormatPanel
	DefaultWidth        = 80
	DefaultWaitInterval = time.Second
	DefaultWaitAttempts = 3
	DefaultHTTPAttempts = 2
	DefaultTimeout      = 30 * time.Second
	DefaultCacheDir     = ".wikitext-cache"
)

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays fc onto fields of cfg that are unset or still
// hold their flag default.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.OutputPath == "" && fc.Output.Path != "" {
		cfg.OutputPath = fc.Output.Path
	}
	if (cfg.Format == "" || cfg.Format == DefaultFormat) && fc.Output.Format != "" {
		cfg.Format = fc.Output.Format
	}
	if (cfg.Width == 0 || cfg.Width == DefaultWidth) && fc.Output.Width > 0 {
		cfg.Width = fc.Output.Width
	}
	if !cfg.Copy && fc.Output.Copy {
		cfg.Copy = true
	}
	if cfg.PDFPath == "" && fc.PDF.Path != "" {
		cfg.PDFPath = fc.PDF.Path
	}
	if cfg.PDFFontPath == "" && fc.PDF.Font != "" {
		cfg.PDFFontPath = fc.PDF.Font
	}

	if cfg.TaxonomyPath == "" && fc.Extract.Taxonomy != "" {
		cfg.TaxonomyPath = fc.Extract.Taxonomy
	}
	if !cfg.Readability && fc.Extract.Readability {
		cfg.Readability = true
	}
	if (cfg.WaitInterval == 0 || cfg.WaitInterval == DefaultWaitInterval) && fc.Extract.Interval > 0 {
		cfg.WaitInterval = fc.Extract.Interval
	}
	if (cfg.WaitAttempts == 0 || cfg.WaitAttempts == DefaultWaitAttempts) && fc.Extract.Attempts > 0 {
		cfg.WaitAttempts = fc.Extract.Attempts
	}

	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent()) && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if (cfg.HTTPAttempts == 0 || cfg.HTTPAttempts == DefaultHTTPAttempts) && fc.Fetch.Attempts > 0 {
		cfg.HTTPAttempts = fc.Fetch.Attempts
	}
	if (cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout) && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if !cfg.IgnoreRobots && fc.Fetch.IgnoreRobots {
		cfg.IgnoreRobots = true
	}

	if (cfg.CacheDir == "" || cfg.CacheDir == DefaultCacheDir) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if !cfg.BypassCache && fc.Cache.Bypass {
		cfg.BypassCache = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig checks that the configuration can drive one run.
func ValidateConfig(cfg Config) error {
	hasURL := strings.TrimSpace(cfg.URL) != ""
	hasFile := strings.TrimSpace(cfg.InputPath) != ""
	switch {
	case !hasURL && !hasFile:
		return errors.New("config: a page URL or -input file is required")
	case hasURL && hasFile:
		return errors.New("config: give either a page URL or -input, not both")
	}
	if _, err := render.ForFormat(cfg.Format, cfg.Width); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Width < 0 || cfg.WaitAttempts < 0 || cfg.HTTPAttempts < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.WaitInterval < 0 || cfg.Timeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	return nil
}
