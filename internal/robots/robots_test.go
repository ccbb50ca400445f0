package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperifyio/wikitext/internal/cache"
)

func robotsServer(t *testing.T, hits *int32, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestManager_MemoryThenETagRevalidation(t *testing.T) {
	t.Parallel()
	var hits int32
	const etag = `W/"v1"`
	srv := robotsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /w/\n"))
	})

	ctx := context.Background()
	m := &Manager{
		HTTPClient:        srv.Client(),
		Cache:             &cache.PageCache{Dir: t.TempDir()},
		UserAgent:         "wikitext-test/1.0",
		EntryExpiry:       time.Hour,
		AllowPrivateHosts: true,
	}
	u := srv.URL + "/robots.txt"

	rules, src, err := m.Get(ctx, u)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if src != SourceNetwork {
		t.Fatalf("expected SourceNetwork, got %v", src)
	}
	if len(rules.Groups) != 1 || rules.Groups[0].Disallow[0] != "/w/" {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	if _, src, _ = m.Get(ctx, u); src != SourceMemory {
		t.Fatalf("expected SourceMemory, got %v", src)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 server hit, got %d", n)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rules, src, err = m.Get(ctx, u)
	if err != nil {
		t.Fatalf("third get: %v", err)
	}
	if src != SourceCache304 {
		t.Fatalf("expected SourceCache304, got %v", src)
	}
	if rules.Groups[0].Disallow[0] != "/w/" {
		t.Fatalf("rules changed after revalidation")
	}
}

func TestManager_Allowed(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := robotsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /w/\nDisallow: /wiki/Special:\n"))
	})
	m := &Manager{HTTPClient: srv.Client(), AllowPrivateHosts: true}
	ctx := context.Background()

	ok, err := m.Allowed(ctx, srv.URL+"/wiki/Go_(programming_language)", "wikitext")
	if err != nil || !ok {
		t.Fatalf("expected article allowed, got %v (%v)", ok, err)
	}
	ok, err = m.Allowed(ctx, srv.URL+"/wiki/Special:Random", "wikitext")
	if err != nil || ok {
		t.Fatalf("expected special page disallowed, got %v (%v)", ok, err)
	}
	ok, _ = m.Allowed(ctx, srv.URL+"/w/index.php?title=Go", "wikitext")
	if ok {
		t.Fatalf("expected /w/ disallowed")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected one robots fetch per host, got %d", n)
	}
}

func TestManager_PrivateHostRejected(t *testing.T) {
	t.Parallel()
	m := &Manager{}
	if _, _, err := m.Get(context.Background(), "http://127.0.0.1/robots.txt"); err == nil {
		t.Fatalf("expected private host error")
	}
	if _, _, err := m.Get(context.Background(), "ftp://example.org/robots.txt"); err == nil {
		t.Fatalf("expected scheme error")
	}
}

func TestManager_Missing404AllowsAll(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := robotsServer(t, &hits, http.NotFound)
	m := &Manager{HTTPClient: srv.Client(), EntryExpiry: time.Minute, AllowPrivateHosts: true}
	u := srv.URL + "/robots.txt"

	rules, _, err := m.Get(context.Background(), u)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !rules.IsAllowed("wikitext", "/any/path") {
		t.Fatalf("expected allow with missing robots")
	}
	if _, src, _ := m.Get(context.Background(), u); src != SourceMemory {
		t.Fatalf("expected SourceMemory, got %v", src)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}
}

func TestManager_TemporaryDisallowOn5xxAndTimeout(t *testing.T) {
	t.Parallel()
	var hits503 int32
	srv503 := robotsServer(t, &hits503, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	m1 := &Manager{HTTPClient: srv503.Client(), EntryExpiry: time.Minute, AllowPrivateHosts: true}
	rules, _, err := m1.Get(context.Background(), srv503.URL+"/robots.txt")
	if err != nil {
		t.Fatalf("unexpected error on 5xx: %v", err)
	}
	if rules.IsAllowed("wikitext", "/wiki/Go") {
		t.Fatalf("expected disallow-all on 5xx")
	}

	var hitsTO int32
	srvTO := robotsServer(t, &hitsTO, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client := *srvTO.Client()
	client.Timeout = 50 * time.Millisecond
	m2 := &Manager{HTTPClient: &client, EntryExpiry: time.Minute, AllowPrivateHosts: true}
	rules, _, err = m2.Get(context.Background(), srvTO.URL+"/robots.txt")
	if err != nil {
		t.Fatalf("unexpected error on timeout: %v", err)
	}
	if rules.IsAllowed("wikitext", "/wiki/Go") {
		t.Fatalf("expected disallow-all on timeout")
	}
	if _, src, _ := m2.Get(context.Background(), srvTO.URL+"/robots.txt"); src != SourceMemory {
		t.Fatalf("expected SourceMemory, got %v", src)
	}
}

func TestRules_AgentPrecedenceAndLongestMatch(t *testing.T) {
	t.Parallel()
	rules := parseRobots(`User-agent: wikitext
Disallow: /private

User-agent: *
Allow: /
`)
	if rules.IsAllowed("wikitext/1.0", "/private/page") {
		t.Fatalf("expected disallow for named agent")
	}
	if !rules.IsAllowed("otheragent", "/private/page") {
		t.Fatalf("expected allow via wildcard group")
	}

	rules = parseRobots(`User-agent: wikitext
Disallow: /private # trailing comment
Allow: /private/public
`)
	if !rules.IsAllowed("wikitext", "/private/public/info") {
		t.Fatalf("expected longer Allow to win")
	}
	if rules.IsAllowed("wikitext", "/private/else") {
		t.Fatalf("expected disallow under shorter rule")
	}
}

func TestRules_WildcardsAndAnchors(t *testing.T) {
	t.Parallel()
	rules := parseRobots(`User-agent: *
Disallow: /*.zip$
Allow: /downloads/*.zip$
Disallow: /*?action=
`)
	cases := []struct {
		path string
		want bool
	}{
		{"/foo/file.zip", false},
		{"/downloads/file.zip", true},
		{"/foo/file.zip?x=1", true},
		{"/w/index.php?action=edit", false},
		{"/wiki/Go", true},
	}
	for _, tc := range cases {
		if got := rules.IsAllowed("any", tc.path); got != tc.want {
			t.Fatalf("IsAllowed(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
