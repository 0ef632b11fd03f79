// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

const resultsPage = `<html><body>
<div class="large-9 columns">
  <div class="post">
    <h3><a href="https://example.edu/result-1.pdf">Level 4 Term 2 Result</a></h3>
    <time>August 20, 2026</time>
  </div>
  <div class="post">
    <h3><a href="https://example.edu/result-2.pdf">Level 3 Term 1 Result</a></h3>
    <time>July 2, 2026</time>
  </div>
  <div class="post">
    <h3>No link here</h3>
  </div>
</div>
</body></html>`

type memCache struct {
	entries map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := m.entries[key]
	return data, ok
}
func (m *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) {
	m.entries[key] = val
}
func (m *memCache) Del(_ context.Context, key string)      { delete(m.entries, key) }
func (m *memCache) DelPattern(_ context.Context, _ string) {}
func (m *memCache) Close() error                           { return nil }

func TestResultsParsesPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(ts.Close)

	s := New(types.ScrapeConfig{ResultsURL: ts.URL}, cache.Nop{}, zerolog.Nop())
	results, err := s.Results(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{
		Href:    "https://example.edu/result-1.pdf",
		Content: "Level 4 Term 2 Result",
		Date:    "August 20, 2026",
	}, results[0])
}

func TestResultsHonorsLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(ts.Close)

	s := New(types.ScrapeConfig{ResultsURL: ts.URL}, cache.Nop{}, zerolog.Nop())
	results, err := s.Results(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestResultsServedFromCache(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(ts.Close)

	mc := &memCache{entries: map[string][]byte{}}
	s := New(types.ScrapeConfig{ResultsURL: ts.URL}, mc, zerolog.Nop())
	ctx := context.Background()

	_, err := s.Results(ctx, 10)
	require.NoError(t, err)
	_, err = s.Results(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResultsSourceUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	s := New(types.ScrapeConfig{ResultsURL: ts.URL}, cache.Nop{}, zerolog.Nop())
	_, err := s.Results(context.Background(), 10)
	require.Error(t, err)
}
