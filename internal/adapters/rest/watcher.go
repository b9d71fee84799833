package rest

import (
	"net/http"
	"time"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/trigger"
)

type watcherStatusResponse struct {
	State          string     `json:"state"`
	LastTrigger    *time.Time `json:"lastTrigger,omitempty"`
	QueueRemaining *int       `json:"queueRemaining,omitempty"`
}

// WatcherEnable handles POST /watcher/enable.
func (h *Handler) WatcherEnable(w http.ResponseWriter, r *http.Request) {
	h.watcher.Enable()
	h.writeStatus(w, r)
}

// WatcherDisable handles POST /watcher/disable.
func (h *Handler) WatcherDisable(w http.ResponseWriter, r *http.Request) {
	h.watcher.Disable()
	h.writeStatus(w, r)
}

// WatcherStatus handles GET /watcher/status.
func (h *Handler) WatcherStatus(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, r)
}

func (h *Handler) writeStatus(w http.ResponseWriter, r *http.Request) {
	res := watcherStatusResponse{State: h.watcher.State().String()}
	if last := h.watcher.LastTrigger(); !last.IsZero() {
		res.LastTrigger = &last
	}

	depth, err := h.bridge.QueueDepth(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read queue depth")
	} else if depthReported(depth) {
		remaining := trigger.EstimateRemaining(depth)
		res.QueueRemaining = &remaining
	}

	h.respond(w, http.StatusOK, res)
}

// depthReported distinguishes a real position report from the zero value
// present before the host ever posted one.
func depthReported(d ports.QueueDepth) bool {
	return d.HasRemaining || d.HasCursor || d.Total > 0
}
