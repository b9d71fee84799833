package rest

import (
	"encoding/json"
	"net/http"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

type trackPayload struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

func (p trackPayload) toDomain() domain.Track {
	return domain.Track{Artist: p.Artist, Title: p.Title, Album: p.Album, Genre: p.Genre}
}

type playerStateRequest struct {
	Selection  []trackPayload `json:"selection"`
	NowPlaying *trackPayload  `json:"nowPlaying"`
}

// PlayerState handles POST /player/state: the host reports its selection
// and playing track.
func (h *Handler) PlayerState(w http.ResponseWriter, r *http.Request) {
	var req playerStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	selection := make([]domain.Track, 0, len(req.Selection))
	for _, p := range req.Selection {
		selection = append(selection, p.toDomain())
	}
	h.bridge.SetSelection(selection)

	if req.NowPlaying != nil {
		playing := req.NowPlaying.toDomain()
		h.bridge.SetNowPlaying(&playing)
	} else {
		h.bridge.SetNowPlaying(nil)
	}

	w.WriteHeader(http.StatusNoContent)
}

type playerPositionRequest struct {
	Remaining *int `json:"remaining"`
	Cursor    *int `json:"cursor"`
	Total     int  `json:"total"`
}

// PlayerPosition handles POST /player/position: a queue position event.
// The snapshot is stored and offered to the watcher.
func (h *Handler) PlayerPosition(w http.ResponseWriter, r *http.Request) {
	var req playerPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	depth := ports.QueueDepth{Total: req.Total}
	if req.Remaining != nil {
		depth.Remaining = *req.Remaining
		depth.HasRemaining = true
	}
	if req.Cursor != nil {
		depth.Cursor = *req.Cursor
		depth.HasCursor = true
	}

	h.bridge.SetQueueDepth(depth)
	h.watcher.Offer(depth)

	w.WriteHeader(http.StatusNoContent)
}
