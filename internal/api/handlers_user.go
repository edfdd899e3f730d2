/**
 * @description
 * User endpoints: device-keyed get-or-create and lookup.
 */
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleCreateOrGetUser returns the user for the posted device id, creating
// it on first sight. Idempotent.
func (h *Handler) handleCreateOrGetUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"device_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.identity.GetOrCreate(r.Context(), req.DeviceID)
	if err != nil {
		h.respondWithError(w, err, "")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// handleGetUser returns the user for a device id or a 404.
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.GetByDevice(r.Context(), chi.URLParam(r, "deviceID"))
	if err != nil {
		h.respondWithError(w, err, "User not found")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
