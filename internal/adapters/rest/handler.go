// Package rest exposes the engine over HTTP: manual discovery runs, player
// state reporting and watcher control.
package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/host"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/trigger"
)

// Runner executes one discovery pipeline run.
type Runner interface {
	Run(ctx context.Context, mode domain.Mode, auto bool) domain.RunResult
}

// Handler manages the HTTP interface for the engine.
type Handler struct {
	runner  Runner
	bridge  *host.Bridge
	watcher *trigger.Controller
	log     zerolog.Logger
	router  *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(runner Runner, bridge *host.Bridge, watcher *trigger.Controller, log zerolog.Logger) *Handler {
	h := &Handler{
		runner:  runner,
		bridge:  bridge,
		watcher: watcher,
		log:     log.With().Str("component", "rest").Logger(),
		router:  http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /discover", h.Discover)
	h.router.HandleFunc("POST /player/state", h.PlayerState)
	h.router.HandleFunc("POST /player/position", h.PlayerPosition)
	h.router.HandleFunc("POST /watcher/enable", h.WatcherEnable)
	h.router.HandleFunc("POST /watcher/disable", h.WatcherDisable)
	h.router.HandleFunc("GET /watcher/status", h.WatcherStatus)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}
