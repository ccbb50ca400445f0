// Package watch drives repeated extraction until a page's content appears.
// Each attempt loads a fresh snapshot and runs an independent extraction.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/wikitext/internal/extract"
)

// LoadFunc returns a fresh snapshot of the page.
type LoadFunc func(ctx context.Context) (extract.Source, error)

// Options bound the readiness loop.
type Options struct {
	// Interval is the minimum time between attempts. Zero means one second.
	Interval time.Duration
	// MaxAttempts caps attempts. Zero means retry until ctx is done.
	MaxAttempts int
}

// Await loads and extracts until the extractor stops reporting
// extract.ErrNotReady. A landing page ends the loop at once.
func Await(ctx context.Context, load LoadFunc, ex extract.Extractor, opts Options) (extract.Document, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for attempt := 1; ; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return extract.Document{}, ctx.Err()
			}
			return extract.Document{}, err
		}
		src, err := load(ctx)
		if err != nil {
			return extract.Document{}, fmt.Errorf("load page: %w", err)
		}
		doc, err := ex.Extract(src)
		if !errors.Is(err, extract.ErrNotReady) {
			return doc, err
		}
		log.Debug().Int("attempt", attempt).Str("url", src.Location()).Msg("content not ready")
		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return extract.Document{}, err
		}
	}
}
