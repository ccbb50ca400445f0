package watch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/wikitext/internal/extract"
)

const (
	loading = `<html><body><div id="content"></div></body></html>`
	ready   = `<html><body><div id="mw-content-text"><p>Loaded body.</p></div></body></html>`
)

func loader(t *testing.T, pageURL string, docs ...string) (LoadFunc, *int) {
	calls := 0
	return func(context.Context) (extract.Source, error) {
		doc := docs[len(docs)-1]
		if calls < len(docs) {
			doc = docs[calls]
		}
		calls++
		p, err := extract.ParsePage(pageURL, strings.NewReader(doc))
		require.NoError(t, err)
		return p, nil
	}, &calls
}

func TestAwait_RetriesUntilReady(t *testing.T) {
	load, calls := loader(t, "https://en.wikipedia.org/wiki/Go", loading, loading, ready)
	doc, err := Await(context.Background(), load, extract.New(nil), Options{Interval: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, "Loaded body.", doc.Text)
	assert.Equal(t, 3, *calls)
}

func TestAwait_LandingPageStopsImmediately(t *testing.T) {
	load, calls := loader(t, "https://en.wikipedia.org/wiki/Main_Page", ready)
	_, err := Await(context.Background(), load, extract.New(nil), Options{Interval: time.Millisecond})
	assert.ErrorIs(t, err, extract.ErrLandingPage)
	assert.Equal(t, 1, *calls)
}

func TestAwait_MaxAttempts(t *testing.T) {
	load, calls := loader(t, "https://en.wikipedia.org/wiki/Go", loading)
	_, err := Await(context.Background(), load, extract.New(nil), Options{Interval: time.Millisecond, MaxAttempts: 2})
	assert.ErrorIs(t, err, extract.ErrNotReady)
	assert.Equal(t, 2, *calls)
}

func TestAwait_ContextCancel(t *testing.T) {
	load, _ := loader(t, "https://en.wikipedia.org/wiki/Go", loading)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Await(ctx, load, extract.New(nil), Options{Interval: 10 * time.Millisecond})
	require.Error(t, err)
}

func TestAwait_LoadErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	load := func(context.Context) (extract.Source, error) { return nil, boom }
	_, err := Await(context.Background(), load, extract.New(nil), Options{})
	assert.ErrorIs(t, err, boom)
}
