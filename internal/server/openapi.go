package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "CardTalk API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the CardTalk question card service.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Create session")
	postSession.SetDescription("Creates a user and returns a session token. Name and provider are optional.")
	postSession.AddReqStructure(SessionRequest{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postSession)

	// GET /api/categories
	listCategories, _ := r.NewOperationContext(http.MethodGet, "/api/categories")
	listCategories.SetSummary("List categories")
	listCategories.SetDescription("Returns all question categories in display order.")
	listCategories.AddRespStructure(CategoryListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listCategories)

	// GET /api/categories/{id}/questions
	listQuestions, _ := r.NewOperationContext(http.MethodGet, "/api/categories/{id}/questions")
	listQuestions.SetSummary("List questions")
	listQuestions.SetDescription("Returns the question pool for a category.")
	listQuestions.AddRespStructure(QuestionListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listQuestions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(listQuestions)

	// GET /api/quota
	getQuota, _ := r.NewOperationContext(http.MethodGet, "/api/quota")
	getQuota.SetSummary("Quota status")
	getQuota.SetDescription("Returns today's draw count and remaining allowance. Requires Bearer token.")
	getQuota.AddRespStructure(QuotaResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuota.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getQuota)

	// POST /api/premium/activate
	postPremium, _ := r.NewOperationContext(http.MethodPost, "/api/premium/activate")
	postPremium.SetSummary("Activate premium")
	postPremium.SetDescription("Upgrades the user with an activation code. Requires Bearer token.")
	postPremium.AddReqStructure(PremiumActivateRequest{})
	postPremium.AddRespStructure(PremiumActivateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPremium.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postPremium.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postPremium)

	// POST /api/deck
	postDeck, _ := r.NewOperationContext(http.MethodPost, "/api/deck")
	postDeck.SetSummary("Start draw session")
	postDeck.SetDescription("Shuffles a working set for a category and deals face-down cards. Requires Bearer token.")
	postDeck.AddReqStructure(DeckStartRequest{})
	postDeck.AddRespStructure(DeckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postDeck.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postDeck.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postDeck)

	// GET /api/deck
	getDeck, _ := r.NewOperationContext(http.MethodGet, "/api/deck")
	getDeck.SetSummary("Draw session state")
	getDeck.SetDescription("Returns the current deck phase, cards, and revealed question. Requires Bearer token.")
	getDeck.AddRespStructure(DeckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getDeck.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getDeck)

	// POST /api/deck/reveal
	postReveal, _ := r.NewOperationContext(http.MethodPost, "/api/deck/reveal")
	postReveal.SetSummary("Reveal card")
	postReveal.SetDescription("Turns over one card and charges a draw against the daily quota. Requires Bearer token.")
	postReveal.AddReqStructure(RevealRequest{})
	postReveal.AddRespStructure(RevealResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReveal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postReveal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postReveal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postReveal)

	// POST /api/deck/shuffle
	postShuffle, _ := r.NewOperationContext(http.MethodPost, "/api/deck/shuffle")
	postShuffle.SetSummary("Reshuffle deck")
	postShuffle.SetDescription("Deals a fresh working set for the current category. Requires Bearer token.")
	postShuffle.AddRespStructure(DeckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postShuffle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postShuffle)

	// POST /api/links
	postLink, _ := r.NewOperationContext(http.MethodPost, "/api/links")
	postLink.SetSummary("Attach link")
	postLink.SetDescription("Attaches a URL and starts resolving its preview. Requires Bearer token.")
	postLink.AddReqStructure(LinkAddRequest{})
	postLink.AddRespStructure(LinkEntry{}, openapi.WithHTTPStatus(http.StatusCreated))
	postLink.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLink.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postLink)

	// GET /api/links
	getLinks, _ := r.NewOperationContext(http.MethodGet, "/api/links")
	getLinks.SetSummary("List links")
	getLinks.SetDescription("Returns attached links with their preview resolution state. Requires Bearer token.")
	getLinks.AddRespStructure(LinkListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLinks)

	// DELETE /api/links
	deleteLink, _ := r.NewOperationContext(http.MethodDelete, "/api/links")
	deleteLink.SetSummary("Remove link")
	deleteLink.SetDescription("Removes one attached link. Pass the URL as a query parameter. Requires Bearer token.")
	deleteLink.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteLink.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(deleteLink)

	// DELETE /api/links/all
	clearLinks, _ := r.NewOperationContext(http.MethodDelete, "/api/links/all")
	clearLinks.SetSummary("Clear links")
	clearLinks.SetDescription("Removes all attached links. Requires Bearer token.")
	clearLinks.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(clearLinks)

	// POST /api/links/resolve
	postResolve, _ := r.NewOperationContext(http.MethodPost, "/api/links/resolve")
	postResolve.SetSummary("Retry preview")
	postResolve.SetDescription("Re-runs preview resolution for an attached link. Requires Bearer token.")
	postResolve.AddReqStructure(LinkResolveRequest{})
	postResolve.AddRespStructure(LinkEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	postResolve.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postResolve)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream for draw and link preview updates. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
