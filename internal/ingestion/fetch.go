package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonathan/resume-shortlist/internal/cache"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single posting fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with posting requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeShortlist/1.0)"

var (
	// ErrInvalidURL is returned when the URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Posting is the cleaned text of a fetched job posting.
type Posting struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Fetcher downloads job postings and reduces them to text.
type Fetcher struct {
	client    *http.Client
	userAgent string
	render    RenderFunc
	cache     *cache.Cache
	log       *zap.Logger
}

// FetcherOptions configures a Fetcher. Render enables the headless fallback
// for postings that need JavaScript.
type FetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	Render    RenderFunc
}

// NewFetcher creates a Fetcher. c may be nil to disable caching.
func NewFetcher(opts FetcherOptions, c *cache.Cache, log *zap.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		render:    opts.Render,
		cache:     c,
		log:       log,
	}
}

// FetchPosting returns the cleaned description text of the posting at urlStr.
func (f *Fetcher) FetchPosting(ctx context.Context, urlStr string) (*Posting, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, urlStr)
	}

	posting, err := cache.GetOrCompute(ctx, f.cache, cache.Key(urlStr), func(ctx context.Context) (Posting, error) {
		return f.fetch(ctx, urlStr)
	})
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

func (f *Fetcher) fetch(ctx context.Context, urlStr string) (Posting, error) {
	platform := DetectPlatform(urlStr)
	log := f.log.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	html, err := f.get(ctx, urlStr)
	if err != nil {
		return Posting{}, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	extraction := ExtractionFor(platform)
	text, err := extraction.Text(html)
	if err != nil {
		return Posting{}, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug("fetched posting", zap.Int("html_bytes", len(html)), zap.Int("text_chars", len(text)))

	rendered := false
	if f.render != nil && NeedsBrowser(text) {
		log.Info("posting text too short, rendering with browser", zap.Int("text_chars", len(text)))
		browserHTML, err := f.render(ctx, urlStr)
		if err != nil {
			log.Warn("browser render failed, keeping HTTP content", zap.Error(err))
		} else if browserText, err := extraction.Text(browserHTML); err == nil {
			text = browserText
			rendered = true
		}
	}

	text = CleanText(text)
	if text == "" {
		return Posting{}, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}

	meta := NewMetadata(text, urlStr)
	meta.Platform = string(platform)
	meta.Rendered = rendered
	return Posting{Text: text, Metadata: meta}, nil
}

func (f *Fetcher) get(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
