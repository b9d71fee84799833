package host

import (
	"context"
	"testing"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

func TestBridge_SelectionRoundTrip(t *testing.T) {
	b := NewBridge()
	ctx := context.Background()

	got, err := b.Selection(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("fresh bridge selection = %v, %v", got, err)
	}

	b.SetSelection([]domain.Track{{Artist: "A", Title: "T"}})
	got, err = b.Selection(ctx)
	if err != nil || len(got) != 1 || got[0].Artist != "A" {
		t.Fatalf("Selection = %v, %v", got, err)
	}

	// Mutating the returned slice must not leak into the snapshot.
	got[0].Artist = "changed"
	again, _ := b.Selection(ctx)
	if again[0].Artist != "A" {
		t.Fatal("Selection must return a copy")
	}
}

func TestBridge_NowPlaying(t *testing.T) {
	b := NewBridge()
	ctx := context.Background()

	playing, err := b.NowPlaying(ctx)
	if err != nil || playing != nil {
		t.Fatalf("idle bridge NowPlaying = %v, %v", playing, err)
	}

	b.SetNowPlaying(&domain.Track{Artist: "A", Title: "T"})
	playing, err = b.NowPlaying(ctx)
	if err != nil || playing == nil || playing.Title != "T" {
		t.Fatalf("NowPlaying = %v, %v", playing, err)
	}

	b.SetNowPlaying(nil)
	playing, _ = b.NowPlaying(ctx)
	if playing != nil {
		t.Fatal("nil update must report idle")
	}
}

func TestBridge_QueueDepth(t *testing.T) {
	b := NewBridge()
	depth := ports.QueueDepth{Remaining: 2, HasRemaining: true, Total: 10}
	b.SetQueueDepth(depth)

	got, err := b.QueueDepth(context.Background())
	if err != nil || got != depth {
		t.Fatalf("QueueDepth = %+v, %v", got, err)
	}
}
