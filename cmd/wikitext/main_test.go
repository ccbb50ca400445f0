package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/wikitext/internal/app"
)

const page = `<html><body><h1 id="firstHeading">Gopher</h1>
<div id="mw-content-text"><p>The gopher is a rodent.</p></div></body></html>`

func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(page), 0o644))

	cfg := app.Config{InputPath: in, OutputPath: out, Format: "plain"}
	require.NoError(t, run(context.Background(), cfg))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "The gopher is a rodent.\n", string(b))
}

func TestRun_LandingPageExitsTwo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	require.NoError(t, os.WriteFile(in, []byte(page), 0o644))

	err := run(context.Background(), app.Config{InputPath: in, BaseURL: "https://en.wikipedia.org/wiki/Main_Page", Format: "plain"})
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(fmt.Errorf("wrapped: %w", app.ErrNoArticleText)))
	assert.Equal(t, 1, exitCode(errors.New("disk full")))
}

func TestParseConfig_Precedence(t *testing.T) {
	t.Setenv("WIKITEXT_FORMAT", "json")
	t.Setenv("WIKITEXT_WAIT_INTERVAL", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wikitext.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: plain\n  width: 120\nextract:\n  interval: 3s\n"), 0o600))

	args := []string{"-env", "", "-config", cfgPath, "https://en.m.wikipedia.org/wiki/Gopher"}
	cfg, err := parseConfig(args, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format, "env overrides file")
	assert.Equal(t, 120, cfg.Width, "file overrides default")
	assert.Equal(t, 3*time.Second, cfg.WaitInterval)
	assert.Equal(t, "https://en.m.wikipedia.org/wiki/Gopher", cfg.URL)

	cfg, err = parseConfig(append([]string{"-format", "plain"}, args...), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Format, "explicit flag wins")
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := parseConfig([]string{"-env", ""}, io.Discard)
	assert.Error(t, err, "missing source")

	_, err = parseConfig([]string{"-env", "", "a", "b"}, io.Discard)
	assert.Error(t, err, "too many arguments")

	_, err = parseConfig([]string{"-env", "", "-format", "xml", "https://en.wikipedia.org/wiki/Go"}, io.Discard)
	assert.Error(t, err, "unknown format")

	_, err = parseConfig([]string{"-version"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
