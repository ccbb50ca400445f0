package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyperifyio/wikitext/internal/robots"
)

// BenchmarkClient_Load measures page loading under different concurrency
// limits, with and without a robots policy.
func BenchmarkClient_Load(b *testing.B) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /w/\n"))
	})
	mux.HandleFunc("/wiki/Go", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	run := func(name string, maxConc int, useRobots bool) {
		b.Run(name, func(b *testing.B) {
			var mgr *robots.Manager
			if useRobots {
				mgr = &robots.Manager{HTTPClient: ts.Client(), EntryExpiry: time.Hour, AllowPrivateHosts: true}
			}
			cli := &Client{
				HTTPClient:        ts.Client(),
				UserAgent:         "bench/1",
				MaxAttempts:       1,
				PerRequestTimeout: 2 * time.Second,
				MaxConcurrent:     maxConc,
				Robots:            mgr,
			}
			pageURL := ts.URL + "/wiki/Go"
			if useRobots {
				_, _ = mgr.Allowed(context.Background(), pageURL, "bench/1")
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					_, err := cli.Load(ctx, pageURL)
					cancel()
					if err != nil {
						b.Errorf("load failed: %v", err)
						return
					}
				}
			})
		})
	}

	run("conc=1,no-robots", 1, false)
	run("conc=8,no-robots", 8, false)
	run("conc=8,robots", 8, true)
}
