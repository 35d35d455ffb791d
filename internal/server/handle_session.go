package server

import (
	"net/http"
	"strings"
)

// SessionRequest is the body for POST /api/session. Both fields are
// optional: the login flow is simulated, identity is just a handle for
// quota and per-user state.
type SessionRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	IsPremium bool   `json:"isPremium"`
}

func handleSessionCreate(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionRequest
		// An empty body means an anonymous session.
		_ = readJSON(r, &req)

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			req.Name = "guest"
		}

		user, token, err := store.CreateUser(r.Context(), req.Name, req.Provider)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{
			Token:     token,
			UserID:    user.ID,
			Name:      user.Name,
			IsPremium: user.IsPremium,
		})
	}
}
