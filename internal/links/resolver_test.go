package links

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeFetcher serves canned HTML per URL, optionally blocking until
// released so tests can interleave removal with an in-flight fetch.
type fakeFetcher struct {
	mu      sync.Mutex
	docs    map[string]string
	errs    map[string]error
	release chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		docs: make(map[string]string),
		errs: make(map[string]error),
	}
}

func (f *fakeFetcher) FetchHTML(ctx context.Context, target string) (string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[target]; ok {
		return "", err
	}
	if doc, ok := f.docs[target]; ok {
		return doc, nil
	}
	return "", errors.New("unknown url")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveSuccess(t *testing.T) {
	f := newFakeFetcher()
	f.docs["https://a.com"] = `<html><head><title>Hi</title></head></html>`

	r := NewResolver(f, discardLogger(), nil)
	r.Resolve(context.Background(), "https://a.com")
	r.Wait()

	res, ok := r.Lookup("https://a.com")
	if !ok || res.State != StateResolved {
		t.Fatalf("state = %+v ok=%v, want resolved", res, ok)
	}
	if res.Preview == nil || res.Preview.Title != "Hi" {
		t.Errorf("preview = %+v, want title Hi", res.Preview)
	}
	if res.Preview.Description != FallbackDescription || res.Preview.Image != DefaultImage {
		t.Errorf("fallback fields = %q / %q", res.Preview.Description, res.Preview.Image)
	}
}

func TestResolveFetchFailure(t *testing.T) {
	f := newFakeFetcher()
	f.errs["https://down.com"] = errors.New("connection refused")

	r := NewResolver(f, discardLogger(), nil)
	r.Resolve(context.Background(), "https://down.com")
	r.Wait()

	res, ok := r.Lookup("https://down.com")
	if !ok || res.State != StateFailed {
		t.Fatalf("state = %+v ok=%v, want failed", res, ok)
	}
	if res.Preview != nil {
		t.Errorf("failed resolution should carry no preview")
	}
}

func TestResolveIndependentPerURL(t *testing.T) {
	f := newFakeFetcher()
	f.docs["https://ok.com"] = `<html><head><title>OK</title></head></html>`
	f.errs["https://down.com"] = errors.New("boom")

	r := NewResolver(f, discardLogger(), nil)
	r.Resolve(context.Background(), "https://ok.com")
	r.Resolve(context.Background(), "https://down.com")
	r.Wait()

	if res, _ := r.Lookup("https://ok.com"); res.State != StateResolved {
		t.Errorf("ok.com state = %s, want resolved", res.State)
	}
	if res, _ := r.Lookup("https://down.com"); res.State != StateFailed {
		t.Errorf("down.com state = %s, want failed", res.State)
	}
}

func TestLateResultDiscardedAfterForget(t *testing.T) {
	f := newFakeFetcher()
	f.docs["https://slow.com"] = `<html><head><title>Slow</title></head></html>`
	f.release = make(chan struct{})

	var updates []string
	r := NewResolver(f, discardLogger(), func(url string, res Resolution) {
		updates = append(updates, fmt.Sprintf("%s:%s", url, res.State))
	})

	r.Resolve(context.Background(), "https://slow.com")
	// Link removed while the fetch is still in flight.
	r.Forget("https://slow.com")
	close(f.release)
	r.Wait()

	if _, ok := r.Lookup("https://slow.com"); ok {
		t.Error("state resurrected by a late-arriving result")
	}
	for _, u := range updates {
		if u == "https://slow.com:resolved" {
			t.Error("update callback fired for a discarded result")
		}
	}
}

func TestRetryAfterFailure(t *testing.T) {
	f := newFakeFetcher()
	f.errs["https://flaky.com"] = errors.New("boom")

	r := NewResolver(f, discardLogger(), nil)
	r.Resolve(context.Background(), "https://flaky.com")
	r.Wait()
	if res, _ := r.Lookup("https://flaky.com"); res.State != StateFailed {
		t.Fatalf("state = %s, want failed", res.State)
	}

	// The page recovers; an explicit re-resolve retries.
	f.mu.Lock()
	delete(f.errs, "https://flaky.com")
	f.docs["https://flaky.com"] = `<html><head><title>Back</title></head></html>`
	f.mu.Unlock()

	r.Resolve(context.Background(), "https://flaky.com")
	r.Wait()
	res, _ := r.Lookup("https://flaky.com")
	if res.State != StateResolved || res.Preview.Title != "Back" {
		t.Errorf("retry state = %+v, want resolved Back", res)
	}
}

func TestUpdateCallbackSequence(t *testing.T) {
	f := newFakeFetcher()
	f.docs["https://a.com"] = `<html><head><title>A</title></head></html>`

	var mu sync.Mutex
	var states []State
	r := NewResolver(f, discardLogger(), func(_ string, res Resolution) {
		mu.Lock()
		states = append(states, res.State)
		mu.Unlock()
	})

	r.Resolve(context.Background(), "https://a.com")
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(states) != 2 || states[0] != StateLoading || states[1] != StateResolved {
		t.Errorf("callback states = %v, want [loading resolved]", states)
	}
}

func TestProxyFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("url") {
		case "https://ok.com":
			fmt.Fprint(w, `{"contents": "<html><head><title>Hi</title></head></html>"}`)
		case "https://empty.com":
			fmt.Fprint(w, `{"status": {"http_code": 500}}`)
		case "https://badjson.com":
			fmt.Fprint(w, `not json at all`)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	f := NewProxyFetcher(srv.URL+"/get?url=", time.Second)
	ctx := context.Background()

	doc, err := f.FetchHTML(ctx, "https://ok.com")
	if err != nil {
		t.Fatalf("FetchHTML: %v", err)
	}
	if doc != "<html><head><title>Hi</title></head></html>" {
		t.Errorf("contents = %q", doc)
	}

	if _, err := f.FetchHTML(ctx, "https://empty.com"); err == nil {
		t.Error("envelope without contents should fail")
	}
	if _, err := f.FetchHTML(ctx, "https://badjson.com"); err == nil {
		t.Error("malformed envelope should fail")
	}
	if _, err := f.FetchHTML(ctx, "https://missing.com"); err == nil {
		t.Error("non-200 proxy status should fail")
	}
}

func TestProxyFetcherTimeout(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := NewProxyFetcher(srv.URL+"/get?url=", 50*time.Millisecond)
	_, err := f.FetchHTML(context.Background(), "https://hang.com")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	<-started
}
