package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/hansolyoo/cardtalk/internal/config"
)

func addRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, db *sql.DB, store Store, hub *stateHub, broker *Broker) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("CardTalk API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Post("/api/session", handleSessionCreate(store))

	// Catalog is public: the category picker renders before login.
	r.Get("/api/categories", handleCategoryList(store))
	r.Get("/api/categories/{id}/questions", handleQuestionList(store))

	// SSE authenticates via query parameter, not the Bearer header.
	r.Get("/api/events", handleEvents(store, broker))

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(store))

		r.Get("/api/quota", handleQuotaStatus(hub, cfg))
		r.Post("/api/premium/activate", handlePremiumActivate(hub, cfg))

		r.Post("/api/deck", handleDeckStart(hub, store, cfg))
		r.Get("/api/deck", handleDeckState(hub))
		r.Post("/api/deck/reveal", handleDeckReveal(hub, cfg))
		r.Post("/api/deck/shuffle", handleDeckShuffle(hub, store))

		r.Post("/api/links", handleLinkAdd(hub))
		r.Get("/api/links", handleLinkList(hub))
		r.Delete("/api/links", handleLinkRemove(hub))
		r.Delete("/api/links/all", handleLinkClear(hub))
		r.Post("/api/links/resolve", handleLinkResolve(hub))
	})

	if cfg.SPADir != "" {
		if info, err := os.Stat(cfg.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", cfg.SPADir)
			r.NotFound(handleSPA(cfg.SPADir))
		}
	}
}
