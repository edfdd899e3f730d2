/**
 * @description
 * This file contains the HTTP handler plumbing shared by all endpoints and
 * the catalog handlers. Handlers parse requests, call the service layer,
 * and translate sentinel errors into status codes; everything unrecognized
 * is an infrastructure failure and becomes a 500.
 */
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sadaa/instrumental-service/internal/app"
	"github.com/sadaa/instrumental-service/internal/domain"
	"github.com/sadaa/instrumental-service/internal/store"
)

// Handler holds the application services the endpoints dispatch to.
type Handler struct {
	catalog     *app.CatalogService
	identity    *app.IdentityService
	entitlement *app.EntitlementService
	limiter     *app.RedisRateLimiter
	rateLimit   int
	logger      *slog.Logger
}

// NewHandler creates a new Handler. limiter may be nil, which disables rate
// limiting on the subscription endpoints.
func NewHandler(
	catalog *app.CatalogService,
	identity *app.IdentityService,
	entitlement *app.EntitlementService,
	limiter *app.RedisRateLimiter,
	rateLimitPerMinute int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:     catalog,
		identity:    identity,
		entitlement: entitlement,
		limiter:     limiter,
		rateLimit:   rateLimitPerMinute,
		logger:      logger,
	}
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError maps service errors onto HTTP status codes.
func (h *Handler) respondWithError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, app.ErrEmptyUpdate), errors.Is(err, app.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("request failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleRoot returns the API banner.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message":  "Sadaa Instrumentals API",
		"version":  "2.0",
		"features": []string{"audio_streaming", "offline_download", "subscription"},
	})
}

// handleSeed wipes and reloads the sample catalog.
func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Seed(r.Context())
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Seeded " + strconv.Itoa(count) + " instrumentals with audio URLs",
	})
}

// handleListInstrumentals returns the catalog with optional mood, premium
// and title-search filters.
func (h *Handler) handleListInstrumentals(w http.ResponseWriter, r *http.Request) {
	filters := app.ListFilters{
		Mood:   r.URL.Query().Get("mood"),
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("is_premium"); raw != "" {
		isPremium, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "is_premium must be a boolean", http.StatusBadRequest)
			return
		}
		filters.IsPremium = &isPremium
	}

	items, err := h.catalog.List(r.Context(), filters)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// handleFeaturedInstrumentals returns the banner tracks.
func (h *Handler) handleFeaturedInstrumentals(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// handleGetInstrumental returns a single track by id.
func (h *Handler) handleGetInstrumental(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, err, "Instrumental not found")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// handleCreateInstrumental creates a new track.
func (h *Handler) handleCreateInstrumental(w http.ResponseWriter, r *http.Request) {
	var input domain.InstrumentalCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// handleUpdateInstrumental applies a partial update to a track.
func (h *Handler) handleUpdateInstrumental(w http.ResponseWriter, r *http.Request) {
	var patch domain.InstrumentalUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.respondWithError(w, err, "Instrumental not found")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// handleDeleteInstrumental removes a track.
func (h *Handler) handleDeleteInstrumental(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondWithError(w, err, "Instrumental not found")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Instrumental deleted successfully"})
}

// handleUpdateAudio is the admin endpoint setting a track's hosted audio
// URL. It accepts form fields for compatibility with the upload tooling.
func (h *Handler) handleUpdateAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	audioURL := r.FormValue("audio_url")
	fileSize, _ := strconv.ParseInt(r.FormValue("file_size"), 10, 64)

	if err := h.catalog.UpdateAudio(r.Context(), chi.URLParam(r, "id"), audioURL, fileSize); err != nil {
		h.respondWithError(w, err, "Instrumental not found")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Audio URL updated successfully"})
}

// handleMoods lists the selectable mood filters.
func (h *Handler) handleMoods(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"moods": h.catalog.Moods(r.Context())})
}

// handleStats returns the admin statistics summary.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
