package ports

import (
	"context"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// AddOptions control how tracks land in an existing playlist.
type AddOptions struct {
	ClearFirst  bool
	IgnoreDupes bool
}

// PlaylistSink is the host primitive for playlist output.
type PlaylistSink interface {
	// FindPlaylist returns the ID of a playlist by name, or ErrNotFound.
	FindPlaylist(ctx context.Context, name string) (string, error)

	// CreatePlaylist makes a new playlist, optionally under a parent.
	CreatePlaylist(ctx context.Context, name, parent string) (string, error)

	// AddTracks appends tracks to the playlist and commits.
	AddTracks(ctx context.Context, playlistID string, tracks []domain.MatchedTrack, opts AddOptions) error
}

// EnqueueOptions control queue-append output.
type EnqueueOptions struct {
	Clear       bool
	SaveHistory bool
}

// QueueSink is the host primitive for queue output.
type QueueSink interface {
	Enqueue(ctx context.Context, tracks []domain.MatchedTrack, opts EnqueueOptions) error
}

// NotifyLevel grades toast messages.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifyWarn
	NotifyError
)

// Notifier renders fire-and-forget user feedback. Implementations must
// never block the pipeline.
type Notifier interface {
	Toast(message string, level NotifyLevel)
	Progress(message string, fraction float64)
}
