package links

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

// State is the lifecycle of one preview resolution.
type State string

const (
	StateLoading  State = "loading"
	StateResolved State = "resolved"
	StateFailed   State = "failed"
)

// Resolution is the current state of one URL, with the preview attached
// once resolved. Failed entries keep no preview: the UI degrades to an
// "open link directly" card.
type Resolution struct {
	State   State             `json:"state"`
	Preview *cardtalk.Preview `json:"preview,omitempty"`
}

// Resolver resolves previews for URLs independently and concurrently.
// Each URL's resolution is its own goroutine; resolving one URL never
// affects another's state. Results arriving after the URL was forgotten
// are discarded at commit time rather than aborting the fetch.
type Resolver struct {
	fetcher  Fetcher
	logger   *slog.Logger
	onUpdate func(target string, res Resolution)

	mu     sync.Mutex
	states map[string]Resolution
	wg     sync.WaitGroup
}

// NewResolver creates a resolver. onUpdate, if non-nil, is invoked after
// every committed state change (used to push SSE updates); it must not
// call back into the resolver.
func NewResolver(fetcher Fetcher, logger *slog.Logger, onUpdate func(string, Resolution)) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		logger:   logger,
		onUpdate: onUpdate,
		states:   make(map[string]Resolution),
	}
}

// Resolve starts (or restarts, for retries) resolution of target. The
// call returns immediately; completion is observed via States or the
// update callback.
func (r *Resolver) Resolve(ctx context.Context, target string) {
	r.commit(target, Resolution{State: StateLoading}, false)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		doc, err := r.fetcher.FetchHTML(ctx, target)
		if err != nil {
			r.logger.Debug("preview fetch failed", "url", target, "error", err)
			r.commit(target, Resolution{State: StateFailed}, true)
			return
		}

		preview, err := ExtractPreview(doc, target)
		if err != nil {
			r.logger.Debug("preview parse failed", "url", target, "error", err)
			r.commit(target, Resolution{State: StateFailed}, true)
			return
		}
		r.commit(target, Resolution{State: StateResolved, Preview: &preview}, true)
	}()
}

// commit stores a state transition. When relevanceCheck is set, a target
// with no tracked state (forgotten while the fetch was in flight) is
// silently dropped.
func (r *Resolver) commit(target string, res Resolution, relevanceCheck bool) {
	r.mu.Lock()
	if relevanceCheck {
		if _, tracked := r.states[target]; !tracked {
			r.mu.Unlock()
			return
		}
	}
	r.states[target] = res
	r.mu.Unlock()

	if r.onUpdate != nil {
		r.onUpdate(target, res)
	}
}

// Forget drops the tracked state for target. Any in-flight resolution for
// it becomes irrelevant and its result is discarded.
func (r *Resolver) Forget(target string) {
	r.mu.Lock()
	delete(r.states, target)
	r.mu.Unlock()
}

// ForgetAll drops every tracked state.
func (r *Resolver) ForgetAll() {
	r.mu.Lock()
	r.states = make(map[string]Resolution)
	r.mu.Unlock()
}

// Lookup returns the tracked state for target.
func (r *Resolver) Lookup(target string) (Resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.states[target]
	return res, ok
}

// States returns a snapshot of all tracked resolutions.
func (r *Resolver) States() map[string]Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Resolution, len(r.states))
	for k, v := range r.states {
		out[k] = v
	}
	return out
}

// Wait blocks until all in-flight resolutions have finished. Used by
// tests and graceful shutdown.
func (r *Resolver) Wait() { r.wg.Wait() }
