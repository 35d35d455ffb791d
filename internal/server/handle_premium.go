package server

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hansolyoo/cardtalk/internal/config"
)

type PremiumActivateRequest struct {
	Code string `json:"code"`
}

type PremiumActivateResponse struct {
	IsPremium bool `json:"isPremium"`
}

// handlePremiumActivate upgrades the user when the activation code
// matches the configured bcrypt hash. This stands in for the payment
// flow, which is out of scope; the flag itself is real and persisted.
func handlePremiumActivate(hub *stateHub, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.PremiumCodeHash == "" {
			writeError(w, http.StatusConflict, "premium activation is not enabled")
			return
		}

		var req PremiumActivateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Code = strings.TrimSpace(req.Code)
		if req.Code == "" {
			writeError(w, http.StatusBadRequest, "code is required")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.PremiumCodeHash), []byte(req.Code)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid activation code")
			return
		}

		user := userFrom(r)
		st := hub.get(user.ID)
		st.tracker.SetPremium(r.Context(), true)

		writeJSON(w, http.StatusOK, PremiumActivateResponse{IsPremium: true})
	}
}
