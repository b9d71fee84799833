package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/env"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/host"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/lastfm"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/notify"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/rest"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/spotify"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/adapters/sqlite"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/services"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/gateway"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/match"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/trigger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(envOr("MM_LOG_LEVEL", "info")); err == nil {
		log = log.Level(level)
	}

	settings := env.NewSettings("MM")

	apiKey := os.Getenv("MM_SIMILARITY_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("MM_SIMILARITY_API_KEY environment variable is required")
	}

	// Driven adapters.
	db, err := sqlite.NewAdapter(settings.String("storage.path", "matchmonkey.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	similarity := lastfm.NewClient(
		settings.String("similarity.base_url", "https://ws.audioscrobbler.com/2.0/"),
		apiKey,
		log,
	)
	features := spotify.NewClient(spotify.Config{
		BaseURL:      settings.String("features.base_url", "https://api.spotify.com/v1"),
		TokenURL:     settings.String("features.token_url", "https://accounts.spotify.com/api/token"),
		ClientID:     os.Getenv("MM_FEATURES_CLIENT_ID"),
		ClientSecret: os.Getenv("MM_FEATURES_CLIENT_SECRET"),
	}, log)

	interval := time.Duration(settings.Int("gateway.min_interval_ms", 250)) * time.Millisecond
	gw := gateway.New(similarity, features, gateway.NewLimiter(interval), gateway.NewLimiter(interval))

	bridge := host.NewBridge()
	matcher := match.New(db, log)
	notifier := notify.NewLogger(log)

	// Core service.
	orch := services.NewOrchestrator(gw, matcher, bridge, db, db, notifier, settings, log)

	// Auto-trigger watcher.
	autoMode := domain.Mode(settings.String("watcher.mode", string(domain.ModeArtist)))
	watcher := trigger.New(func(ctx context.Context) domain.RunResult {
		return orch.Run(ctx, autoMode, true)
	}, log,
		trigger.WithThreshold(settings.Int("watcher.threshold", 2)),
		trigger.WithCooldown(time.Duration(settings.Int("watcher.cooldown_ms", 5000))*time.Millisecond),
	)
	watcher.Start()
	defer watcher.Stop()
	if settings.Bool("watcher.enabled", false) {
		watcher.Enable()
	}

	// Driving adapter.
	handler := rest.NewHandler(orch, bridge, watcher, log)

	addr := settings.String("http.addr", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("MatchMonkey API is running")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
