package ports

import (
	"context"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// SeedSource exposes the host player's listening context.
type SeedSource interface {
	// Selection returns the tracks currently selected in the host,
	// possibly empty.
	Selection(ctx context.Context) ([]domain.Track, error)

	// NowPlaying returns the playing track, or nil when playback is idle.
	NowPlaying(ctx context.Context) (*domain.Track, error)
}

// QueueDepth is a snapshot of how much of the play queue is left.
// The estimate fallback chain prefers Remaining, then Total-Cursor,
// then Total alone.
type QueueDepth struct {
	Remaining    int
	HasRemaining bool
	Cursor       int
	HasCursor    bool
	Total        int
}

// PlaybackStatus reports queue position for the auto-trigger controller.
type PlaybackStatus interface {
	QueueDepth(ctx context.Context) (QueueDepth, error)
}
