package server

import (
	"errors"
	"net/http"

	"github.com/hansolyoo/cardtalk/internal/config"
	"github.com/hansolyoo/cardtalk/internal/deck"
)

type DeckStartRequest struct {
	CategoryID string `json:"categoryId"`
}

// CardBack is one face-down card: the id is enough to reveal it, the
// text stays hidden until then.
type CardBack struct {
	ID string `json:"id"`
}

type DeckResponse struct {
	Phase      string        `json:"phase"`
	CategoryID string        `json:"categoryId"`
	Cards      []CardBack    `json:"cards"`
	Revealed   *QuestionInfo `json:"revealed,omitempty"`
}

type RevealRequest struct {
	QuestionID string `json:"questionId"`
}

type RevealResponse struct {
	Question QuestionInfo  `json:"question"`
	Quota    QuotaResponse `json:"quota"`
}

func deckResponse(st *userState) DeckResponse {
	resp := DeckResponse{
		Phase:      string(st.deck.Phase()),
		CategoryID: st.deck.CategoryID(),
		Cards:      []CardBack{},
	}
	for _, q := range st.deck.WorkingSet() {
		resp.Cards = append(resp.Cards, CardBack{ID: q.ID})
	}
	if q, ok := st.deck.Revealed(); ok {
		resp.Revealed = &QuestionInfo{ID: q.ID, CategoryID: q.CategoryID, Text: q.Text}
	}
	return resp
}

func quotaResponse(r *http.Request, st *userState, cfg *config.Config) QuotaResponse {
	ctx := r.Context()
	premium := st.tracker.IsPremium(ctx)
	count := st.tracker.CurrentCount(ctx)
	remaining := cfg.FreeDailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return QuotaResponse{
		Count:     count,
		Limit:     cfg.FreeDailyLimit,
		Remaining: remaining,
		IsPremium: premium,
		CanDraw:   st.tracker.CanDraw(ctx, premium, cfg.FreeDailyLimit),
	}
}

// handleDeckStart opens a draw session for a category. The quota gate
// lives here, not in the session: the deck itself never consults quota
// state.
func handleDeckStart(hub *stateHub, store Store, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeckStartRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.CategoryID == "" {
			writeError(w, http.StatusBadRequest, "categoryId is required")
			return
		}

		exists, err := store.CategoryExists(r.Context(), req.CategoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)

		premium := st.tracker.IsPremium(r.Context())
		if !st.tracker.CanDraw(r.Context(), premium, cfg.FreeDailyLimit) {
			writeError(w, http.StatusForbidden, "daily limit reached")
			return
		}

		pool, err := store.ListQuestions(r.Context(), req.CategoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		st.mu.Lock()
		st.deck.Start(req.CategoryID, pool)
		resp := deckResponse(st)
		st.mu.Unlock()

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleDeckState(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		resp := deckResponse(st)
		st.mu.Unlock()

		writeJSON(w, http.StatusOK, resp)
	}
}

// handleDeckReveal turns over one card. The reveal is the metered unit:
// the gate is checked here again so a session opened under yesterday's
// allowance cannot draw past today's.
func handleDeckReveal(hub *stateHub, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RevealRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.QuestionID == "" {
			writeError(w, http.StatusBadRequest, "questionId is required")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)

		premium := st.tracker.IsPremium(r.Context())
		if !st.tracker.CanDraw(r.Context(), premium, cfg.FreeDailyLimit) {
			writeError(w, http.StatusForbidden, "daily limit reached")
			return
		}

		st.mu.Lock()
		err := st.deck.Reveal(req.QuestionID)
		q, revealed := st.deck.Revealed()
		st.mu.Unlock()

		switch {
		case errors.Is(err, deck.ErrNotReady):
			writeError(w, http.StatusConflict, "deck is not ready")
			return
		case errors.Is(err, deck.ErrUnknownQuestion):
			writeError(w, http.StatusNotFound, "question is not in the working set")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// The shuffling no-op leaves nothing revealed; report current
		// state without charging a draw.
		if !revealed {
			writeError(w, http.StatusConflict, "deck is shuffling")
			return
		}

		writeJSON(w, http.StatusOK, RevealResponse{
			Question: QuestionInfo{ID: q.ID, CategoryID: q.CategoryID, Text: q.Text},
			Quota:    quotaResponse(r, st, cfg),
		})
	}
}

func handleDeckShuffle(hub *stateHub, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		categoryID := st.deck.CategoryID()
		st.mu.Unlock()

		if categoryID == "" {
			writeError(w, http.StatusConflict, "no draw session started")
			return
		}

		// Re-read the pool so a changed catalog is picked up.
		pool, err := store.ListQuestions(r.Context(), categoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		st.mu.Lock()
		err = st.deck.Reshuffle(pool)
		resp := deckResponse(st)
		st.mu.Unlock()

		if errors.Is(err, deck.ErrNotReady) {
			writeError(w, http.StatusConflict, "no draw session started")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
