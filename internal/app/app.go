// Package app wires configuration, page loading, extraction and rendering
// into a single run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/wikitext/internal/cache"
	"github.com/hyperifyio/wikitext/internal/copier"
	"github.com/hyperifyio/wikitext/internal/extract"
	"github.com/hyperifyio/wikitext/internal/fetch"
	"github.com/hyperifyio/wikitext/internal/render"
	"github.com/hyperifyio/wikitext/internal/robots"
	"github.com/hyperifyio/wikitext/internal/taxonomy"
	"github.com/hyperifyio/wikitext/internal/watch"
)

// ErrNoArticleText is returned when a run produces no text to show: a
// landing page, a page whose content never appeared, or an empty article.
// Per the exit code policy this maps to exit status 2.
var ErrNoArticleText = errors.New("no article text")

type App struct {
	cfg       Config
	extractor extract.Extractor
	client    *fetch.Client
	renderer  render.Renderer
	copier    copier.Copier
	stdout    io.Writer
}

// Option customizes an App.
type Option func(*App)

// WithStdout redirects rendered output that has no OutputPath.
func WithStdout(w io.Writer) Option { return func(a *App) { a.stdout = w } }

// WithCopier replaces the clipboard writer.
func WithCopier(c copier.Copier) Option { return func(a *App) { a.copier = c } }

func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	renderer, err := render.ForFormat(cfg.Format, cfg.Width)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, renderer: renderer, stdout: os.Stdout}
	a.extractor = extract.New(tax)
	if cfg.Readability {
		a.extractor = extract.FallbackExtractor{
			Primary:  a.extractor,
			Fallback: extract.ReadabilityExtractor{Taxonomy: tax},
		}
	}

	if cfg.URL != "" {
		a.client = a.newClient()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *App) newClient() *fetch.Client {
	cfg := a.cfg
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent()
	}
	httpClient := newHTTPClient(cfg.Timeout)
	c := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         ua,
		MaxAttempts:       cfg.HTTPAttempts,
		PerRequestTimeout: cfg.Timeout,
		BypassCache:       cfg.BypassCache,
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		c.Cache = &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	if !cfg.IgnoreRobots {
		c.Robots = &robots.Manager{HTTPClient: httpClient, Cache: c.Cache, UserAgent: ua}
	}
	return c
}

// Run loads the page, extracts its text and writes the configured outputs.
func (a *App) Run(ctx context.Context) error {
	pageURL := a.location()
	opts := watch.Options{Interval: a.cfg.WaitInterval, MaxAttempts: a.cfg.WaitAttempts}
	if a.client == nil {
		// A saved file never changes between attempts.
		opts.MaxAttempts = 1
	}
	doc, err := watch.Await(ctx, a.load, a.extractor, opts)
	switch {
	case errors.Is(err, extract.ErrLandingPage), errors.Is(err, extract.ErrNotReady):
		log.Warn().Str("url", pageURL).Err(err).Msg("no article content")
		return fmt.Errorf("%w: %w", ErrNoArticleText, err)
	case err != nil:
		return err
	case doc.Text == "":
		log.Warn().Str("url", pageURL).Msg("article body is empty after cleaning")
		return ErrNoArticleText
	}

	view := render.NewView(pageURL, doc)
	log.Info().
		Str("title", doc.Title).
		Int("paragraphs", view.Stats.Paragraphs).
		Int("characters", view.Stats.Characters).
		Int("words", view.Stats.Words).
		Msg("extracted article")

	if a.cfg.Copy {
		view.CopyLabel = a.copier.Copy(doc.Text)
	}
	if err := a.writeView(view); err != nil {
		return err
	}
	if a.cfg.PDFPath != "" {
		if err := ensureDir(a.cfg.PDFPath); err != nil {
			return err
		}
		if err := render.WritePDF(view, a.cfg.PDFPath, a.cfg.PDFFontPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", a.cfg.PDFPath).Msg("wrote pdf")
	}
	return nil
}

func (a *App) location() string {
	if a.cfg.URL != "" {
		return fetch.Canonical(a.cfg.URL)
	}
	if a.cfg.BaseURL != "" {
		return a.cfg.BaseURL
	}
	abs, err := filepath.Abs(a.cfg.InputPath)
	if err != nil {
		abs = a.cfg.InputPath
	}
	return "file://" + filepath.ToSlash(abs)
}

func (a *App) load(ctx context.Context) (extract.Source, error) {
	if a.client != nil {
		return a.client.Load(ctx, a.cfg.URL)
	}
	f, err := os.Open(a.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract.ParsePage(a.location(), f)
}

func (a *App) writeView(view render.View) error {
	if strings.TrimSpace(a.cfg.OutputPath) == "" {
		return a.renderer.Render(a.stdout, view)
	}
	if err := ensureDir(a.cfg.OutputPath); err != nil {
		return err
	}
	f, err := os.Create(a.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := a.renderer.Render(f, view); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	log.Info().Str("path", a.cfg.OutputPath).Msg("wrote output")
	return nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	return nil
}
