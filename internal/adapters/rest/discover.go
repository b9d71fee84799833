package rest

import (
	"encoding/json"
	"net/http"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

type discoverRequest struct {
	Mode string `json:"mode"`
}

type discoverResponse struct {
	Success     bool   `json:"success"`
	TracksAdded int    `json:"tracksAdded"`
	Error       string `json:"error,omitempty"`
}

// Discover handles POST /discover: a manual pipeline run.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mode := domain.Mode(req.Mode)
	if !domain.ValidMode(mode) {
		http.Error(w, "unknown discovery mode", http.StatusBadRequest)
		return
	}

	res := h.runner.Run(r.Context(), mode, false)

	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	h.respond(w, status, discoverResponse{
		Success:     res.Success,
		TracksAdded: res.TracksAdded,
		Error:       res.Error,
	})
}
