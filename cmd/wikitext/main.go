package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/wikitext/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// parseConfig builds the configuration. Precedence from low to high:
// flag defaults, -config file, WIKITEXT_* environment (including .env
// files), flags given on the command line.
func parseConfig(args []string, stderr io.Writer) (app.Config, error) {
	var (
		cfg        app.Config
		configPath string
		envFiles   string
		version    bool
	)
	fs := flag.NewFlagSet("wikitext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: wikitext [flags] <article-url>\n       wikitext [flags] -input page.html\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	fs.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load; missing files are skipped")
	fs.BoolVar(&version, "version", false, "Print version and exit")
	fs.StringVar(&cfg.InputPath, "input", "", "Read a saved article HTML file instead of fetching")
	fs.StringVar(&cfg.BaseURL, "base", "", "URL attributed to the -input page")
	fs.StringVar(&cfg.OutputPath, "output", "", "Write the rendered result to this file instead of stdout")
	fs.StringVar(&cfg.Format, "format", app.DefaultFormat, "Output format: panel, plain or json")
	fs.IntVar(&cfg.Width, "width", app.DefaultWidth, "Panel width in columns")
	fs.StringVar(&cfg.PDFPath, "pdf", "", "Also export the text to this PDF file")
	fs.StringVar(&cfg.PDFFontPath, "pdf.font", "", "UTF-8 TrueType font for PDF output (needed for CJK)")
	fs.BoolVar(&cfg.Copy, "copy", false, "Copy the extracted text to the system clipboard")
	fs.StringVar(&cfg.TaxonomyPath, "taxonomy", "", "YAML file adding selectors, section titles, noise patterns or landing pages")
	fs.BoolVar(&cfg.Readability, "readability", false, "Fall back to a readability heuristic on pages without article content")
	fs.DurationVar(&cfg.WaitInterval, "wait.interval", app.DefaultWaitInterval, "Delay between attempts while the article content is missing")
	fs.IntVar(&cfg.WaitAttempts, "wait.attempts", app.DefaultWaitAttempts, "Attempts before giving up on missing article content")
	fs.StringVar(&cfg.UserAgent, "ua", app.DefaultUserAgent(), "User-Agent for HTTP requests")
	fs.IntVar(&cfg.HTTPAttempts, "http.attempts", app.DefaultHTTPAttempts, "HTTP attempts per request including retries")
	fs.DurationVar(&cfg.Timeout, "timeout", app.DefaultTimeout, "Per-request HTTP timeout")
	fs.BoolVar(&cfg.IgnoreRobots, "robots.ignore", false, "Do not consult robots.txt")
	fs.StringVar(&cfg.CacheDir, "cache.dir", app.DefaultCacheDir, "Page cache directory; empty disables caching")
	fs.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cached pages older than this (e.g. 24h); 0 disables")
	fs.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear the cache directory before the run")
	fs.BoolVar(&cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.BoolVar(&cfg.BypassCache, "cache.bypass", false, "Skip conditional requests but still refresh the cache")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if version {
		fmt.Fprintf(stderr, "wikitext %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return cfg, flag.ErrHelp
	}

	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		return cfg, err
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	// Parse again so explicit flags win over file and env values.
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.URL = strings.TrimSpace(fs.Arg(0))
	default:
		return cfg, fmt.Errorf("expected one article URL, got %d arguments", fs.NArg())
	}
	if err := app.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}

// exitCode maps run errors to the exit code policy: 2 when no article text
// was produced, 1 for configuration and I/O failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoArticleText):
		return 2
	default:
		return 1
	}
}
