package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
	"github.com/hansolyoo/cardtalk/internal/links"
)

type LinkAddRequest struct {
	URL string `json:"url"`
}

// LinkEntry is one attached link with its current resolution state. A
// failed entry still carries the raw URL so the UI can offer "open
// directly" and removal — never a dead end.
type LinkEntry struct {
	URL     string            `json:"url"`
	State   string            `json:"state"`
	Preview *cardtalk.Preview `json:"preview,omitempty"`
}

type LinkListResponse struct {
	Links    []LinkEntry `json:"links"`
	Capacity int         `json:"capacity"`
}

type LinkResolveRequest struct {
	URL string `json:"url"`
}

func linkAddStatus(err error) (int, string) {
	switch {
	case errors.Is(err, links.ErrEmptyInput):
		return http.StatusBadRequest, "link is empty"
	case errors.Is(err, links.ErrInvalidURL):
		return http.StatusBadRequest, "not a valid URL"
	case errors.Is(err, links.ErrDuplicateURL):
		return http.StatusConflict, "link already attached"
	case errors.Is(err, links.ErrCapacityExceeded):
		return http.StatusConflict, "link capacity exceeded"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func handleLinkAdd(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LinkAddRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		stored, err := st.links.Add(req.URL)
		st.mu.Unlock()
		if err != nil {
			status, msg := linkAddStatus(err)
			writeError(w, status, msg)
			return
		}

		// Resolution outlives the request; it reports back through SSE
		// and the list endpoint.
		st.resolver.Resolve(context.Background(), stored)

		writeJSON(w, http.StatusCreated, LinkEntry{
			URL:   stored,
			State: string(links.StateLoading),
		})
	}
}

func handleLinkList(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		urls := st.links.URLs()
		capacity := st.links.Capacity()
		st.mu.Unlock()

		resp := LinkListResponse{Links: []LinkEntry{}, Capacity: capacity}
		for _, u := range urls {
			entry := LinkEntry{URL: u, State: string(links.StateLoading)}
			if res, ok := st.resolver.Lookup(u); ok {
				entry.State = string(res.State)
				entry.Preview = res.Preview
			}
			resp.Links = append(resp.Links, entry)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleLinkRemove(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		if target == "" {
			writeError(w, http.StatusBadRequest, "url query parameter required")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		st.links.Remove(target)
		st.mu.Unlock()
		// Any in-flight resolution for this URL is now irrelevant.
		st.resolver.Forget(target)

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleLinkClear(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		st.links.Clear()
		st.mu.Unlock()
		st.resolver.ForgetAll()

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleLinkResolve retries a failed preview. Retries are always caller
// initiated; the resolver never retries on its own.
func handleLinkResolve(hub *stateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LinkResolveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)

		st.mu.Lock()
		attached := st.links.Contains(req.URL)
		st.mu.Unlock()
		if !attached {
			writeError(w, http.StatusNotFound, "link not attached")
			return
		}

		st.resolver.Resolve(context.Background(), req.URL)

		writeJSON(w, http.StatusOK, LinkEntry{
			URL:   req.URL,
			State: string(links.StateLoading),
		})
	}
}
