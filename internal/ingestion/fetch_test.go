package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/resume-shortlist/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	data map[string][]byte
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func longDescription() string {
	return strings.Repeat("Build and operate Go services backed by PostgreSQL. ", 15)
}

func postingServer(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchPosting_Success(t *testing.T) {
	server := postingServer(t, "<html><body><main><h1>Backend Engineer</h1><p>"+longDescription()+"</p></main></body></html>", nil)

	fetcher := NewFetcher(FetcherOptions{}, nil, nil)
	posting, err := fetcher.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(posting.Text, "Backend Engineer\n"))
	assert.Equal(t, server.URL, posting.Metadata.URL)
	assert.Equal(t, string(PlatformUnknown), posting.Metadata.Platform)
	assert.False(t, posting.Metadata.Rendered)
	assert.Len(t, posting.Metadata.Hash, 64)
}

func TestFetchPosting_InvalidURL(t *testing.T) {
	fetcher := NewFetcher(FetcherOptions{}, nil, nil)

	for _, u := range []string{"", "not-a-url", "example.com", "http://"} {
		_, err := fetcher.FetchPosting(context.Background(), u)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
}

func TestFetchPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{}, nil, nil)
	_, err := fetcher.FetchPosting(context.Background(), server.URL)

	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchPosting_BrowserFallback(t *testing.T) {
	server := postingServer(t, `<html><body><div id="root">Loading...</div></body></html>`, nil)

	var rendered int32
	render := func(_ context.Context, url string) (string, error) {
		atomic.AddInt32(&rendered, 1)
		return "<html><body><main><p>" + longDescription() + "</p></main></body></html>", nil
	}

	fetcher := NewFetcher(FetcherOptions{Render: render}, nil, nil)
	posting, err := fetcher.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&rendered))
	assert.True(t, posting.Metadata.Rendered)
	assert.Contains(t, posting.Text, "PostgreSQL")
}

func TestFetchPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := postingServer(t, `<html><body><main><p>Short posting</p></main></body></html>`, nil)

	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	fetcher := NewFetcher(FetcherOptions{Render: render}, nil, nil)
	posting, err := fetcher.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Short posting", posting.Text)
	assert.False(t, posting.Metadata.Rendered)
}

func TestFetchPosting_EmptyPage(t *testing.T) {
	server := postingServer(t, `<html><body></body></html>`, nil)

	fetcher := NewFetcher(FetcherOptions{}, nil, nil)
	_, err := fetcher.FetchPosting(context.Background(), server.URL)

	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFetchPosting_Cached(t *testing.T) {
	var hits int32
	server := postingServer(t, "<html><body><main><p>"+longDescription()+"</p></main></body></html>", &hits)

	c := cache.New(&memoryStore{data: map[string][]byte{}}, "postings", time.Hour, nil, nil)
	fetcher := NewFetcher(FetcherOptions{}, c, nil)

	first, err := fetcher.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := fetcher.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
