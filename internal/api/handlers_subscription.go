/**
 * @description
 * Subscription endpoints: subscribe, status, restore-purchase and cancel.
 * Absence of a subscription is never an error on these routes; the handlers
 * return negative-but-successful results, matching what the mobile client
 * expects. An optional Redis rate limit guards each route per user id.
 */
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// allowSubscriptionRequest applies the per-user fixed-window rate limit.
// Limiter failures fail open: entitlement must keep working when Redis is
// down.
func (h *Handler) allowSubscriptionRequest(w http.ResponseWriter, r *http.Request, userID string) bool {
	count, retryAfter, err := h.limiter.Consume(r.Context(), "subscription", userID, h.rateLimit, time.Minute)
	if err != nil {
		h.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}
	if h.rateLimit > 0 && count > h.rateLimit {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return false
	}
	return true
}

// handleSubscribe creates (or idempotently returns) the user's active
// subscription.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Plan   string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !h.allowSubscriptionRequest(w, r, req.UserID) {
		return
	}

	sub, err := h.entitlement.Subscribe(r.Context(), req.UserID, req.Plan)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, sub)
}

// handleSubscriptionStatus reports entitlement, lazily expiring a lapsed
// subscription as a side effect.
func (h *Handler) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !h.allowSubscriptionRequest(w, r, userID) {
		return
	}

	status, err := h.entitlement.GetStatus(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// handleRestore re-establishes entitlement after a reinstall without
// triggering expiry evaluation.
func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !h.allowSubscriptionRequest(w, r, userID) {
		return
	}

	result, err := h.entitlement.Restore(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// handleCancel deactivates all active subscriptions for the user.
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !h.allowSubscriptionRequest(w, r, userID) {
		return
	}

	result, err := h.entitlement.Cancel(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// handleReconcile recomputes a user's subscription cache from ground truth.
// Admin-facing; useful after a crash left the cache stale.
func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entitled, err := h.entitlement.Reconcile(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"is_subscribed": entitled})
}
