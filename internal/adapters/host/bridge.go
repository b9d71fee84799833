// Package host keeps an in-memory snapshot of the host player's state as
// reported over REST: current selection, playing track and queue depth.
package host

import (
	"context"
	"sync"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Bridge implements SeedSource and PlaybackStatus over the last reported
// player state. Safe for concurrent readers and writers.
type Bridge struct {
	mu        sync.RWMutex
	selection []domain.Track
	playing   *domain.Track
	depth     ports.QueueDepth
}

var (
	_ ports.SeedSource     = (*Bridge)(nil)
	_ ports.PlaybackStatus = (*Bridge)(nil)
)

// NewBridge constructs an empty Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetSelection replaces the reported selection.
func (b *Bridge) SetSelection(tracks []domain.Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = append([]domain.Track(nil), tracks...)
}

// SetNowPlaying replaces the reported playing track; nil means idle.
func (b *Bridge) SetNowPlaying(track *domain.Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if track == nil {
		b.playing = nil
		return
	}
	copied := *track
	b.playing = &copied
}

// SetQueueDepth replaces the reported queue position.
func (b *Bridge) SetQueueDepth(depth ports.QueueDepth) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.depth = depth
}

// Selection returns a copy of the reported selection.
func (b *Bridge) Selection(ctx context.Context) ([]domain.Track, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Track(nil), b.selection...), nil
}

// NowPlaying returns the reported playing track, nil when idle.
func (b *Bridge) NowPlaying(ctx context.Context) (*domain.Track, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.playing == nil {
		return nil, nil
	}
	copied := *b.playing
	return &copied, nil
}

// QueueDepth returns the last reported queue position.
func (b *Bridge) QueueDepth(ctx context.Context) (ports.QueueDepth, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.depth, nil
}
