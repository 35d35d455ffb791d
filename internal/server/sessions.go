package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
	"github.com/hansolyoo/cardtalk/internal/deck"
	"github.com/hansolyoo/cardtalk/internal/links"
	"github.com/hansolyoo/cardtalk/internal/quota"
)

// userState bundles the per-user in-memory state machines: the draw
// session, the link collection with its resolver, and the quota tracker.
// mu serializes the UI-triggered operations on them; the host performs
// one user action at a time, so contention is incidental, not structural.
type userState struct {
	mu       sync.Mutex
	deck     *deck.Session
	links    *links.Collection
	resolver *links.Resolver
	tracker  *quota.Tracker
}

// stateHub hands out userState instances, creating them lazily per user.
type stateHub struct {
	store    quota.Store
	clock    quota.Clock
	fetcher  links.Fetcher
	broker   *Broker
	logger   *slog.Logger
	deckSize int
	maxLinks int

	mu     sync.RWMutex
	states map[string]*userState
}

func newStateHub(store quota.Store, clock quota.Clock, fetcher links.Fetcher, broker *Broker, logger *slog.Logger, deckSize, maxLinks int) *stateHub {
	return &stateHub{
		store:    store,
		clock:    clock,
		fetcher:  fetcher,
		broker:   broker,
		logger:   logger,
		deckSize: deckSize,
		maxLinks: maxLinks,
		states:   make(map[string]*userState),
	}
}

func (h *stateHub) get(userID string) *userState {
	h.mu.RLock()
	st, ok := h.states[userID]
	h.mu.RUnlock()
	if ok {
		return st
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Double-check after acquiring write lock.
	if st, ok := h.states[userID]; ok {
		return st
	}

	st = &userState{}
	st.tracker = quota.NewTracker(h.store, h.clock, h.logger, userID)

	// Every reveal reports the draw here, which is what meters the quota
	// and feeds the SSE stream. The request context is gone by the time
	// background pushes happen, so the callback uses its own.
	st.deck = deck.New(h.deckSize, func(q cardtalk.Question) {
		count := st.tracker.RecordDraw(context.Background())
		h.broker.Publish(userID, Event{Type: "draw", QuestionID: q.ID, Count: count})
	})

	st.links = links.NewCollection(h.maxLinks)
	st.resolver = links.NewResolver(h.fetcher, h.logger, func(url string, res links.Resolution) {
		h.broker.Publish(userID, Event{Type: "link_update", URL: url, State: string(res.State)})
	})

	h.states[userID] = st
	return st
}
