package server

import (
	"net/http"

	"github.com/hansolyoo/cardtalk/internal/config"
)

// QuotaResponse feeds the premium-upsell UI: how much of today's free
// allowance is used and whether another draw would go through.
type QuotaResponse struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	IsPremium bool `json:"isPremium"`
	CanDraw   bool `json:"canDraw"`
}

func handleQuotaStatus(hub *stateHub, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		st := hub.get(user.ID)
		writeJSON(w, http.StatusOK, quotaResponse(r, st, cfg))
	}
}
