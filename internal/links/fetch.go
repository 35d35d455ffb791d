package links

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Fetcher retrieves the raw HTML body of a remote page. It sits behind an
// interface so the resolver's parsing logic stays deterministic in tests.
type Fetcher interface {
	FetchHTML(ctx context.Context, target string) (string, error)
}

// DefaultFetchTimeout bounds a proxy fetch so a dead proxy surfaces as a
// failed preview instead of an indefinite loading state.
const DefaultFetchTimeout = 10 * time.Second

var errEmptyContents = errors.New("proxy response has no contents")

// ProxyFetcher fetches pages through a CORS-bypass mirror. The proxy
// contract: GET base + urlencode(target) returns a JSON envelope whose
// "contents" field holds the raw HTML of the target, or an envelope
// without that field on failure.
type ProxyFetcher struct {
	base    string
	timeout time.Duration
	client  *http.Client
}

// NewProxyFetcher creates a fetcher against the given proxy base URL
// (e.g. "https://api.allorigins.win/get?url="). timeout <= 0 falls back
// to DefaultFetchTimeout.
func NewProxyFetcher(base string, timeout time.Duration) *ProxyFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &ProxyFetcher{
		base:    base,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (f *ProxyFetcher) FetchHTML(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+url.QueryEscape(target), nil)
	if err != nil {
		return "", fmt.Errorf("building proxy request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching through proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decoding proxy envelope: %w", err)
	}
	if envelope.Contents == "" {
		return "", errEmptyContents
	}
	return envelope.Contents, nil
}
