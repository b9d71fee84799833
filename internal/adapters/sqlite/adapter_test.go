package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("open adapter: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func seedTrack(t *testing.T, a *Adapter, track domain.MatchedTrack) int64 {
	t.Helper()
	id, err := a.AddLibraryTrack(context.Background(), track)
	if err != nil {
		t.Fatalf("seed track: %v", err)
	}
	return id
}

func TestAdapter_ArtistTracks(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	seedTrack(t, a, domain.MatchedTrack{Title: "Song One", Artist: "Artist A", Album: "LP", Path: "/m/a1.mp3", Rating: 80, Bitrate: 320})
	seedTrack(t, a, domain.MatchedTrack{Title: "Song Two", Artist: "Artist A", Path: "/m/a2.mp3", Bitrate: 192})
	seedTrack(t, a, domain.MatchedTrack{Title: "Other", Artist: "Artist B", Path: "/m/b1.mp3"})

	got, err := a.ArtistTracks(ctx, "artist a")
	if err != nil {
		t.Fatalf("ArtistTracks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(got), got)
	}
	if got[0].Title != "Song One" || got[0].Bitrate != 320 || got[0].Rating != 80 {
		t.Fatalf("first track = %+v", got[0])
	}

	empty, err := a.ArtistTracks(ctx, "Nobody")
	if err != nil {
		t.Fatalf("ArtistTracks for unknown artist: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unknown artist should yield empty, got %+v", empty)
	}
}

func TestAdapter_PlaylistLifecycle(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.FindPlaylist(ctx, "Discovered"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing playlist should report not found, got %v", err)
	}

	id, err := a.CreatePlaylist(ctx, "Discovered", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	found, err := a.FindPlaylist(ctx, "Discovered")
	if err != nil || found != id {
		t.Fatalf("FindPlaylist = %q, %v; want %q", found, err, id)
	}

	t1 := seedTrack(t, a, domain.MatchedTrack{Title: "T1", Artist: "B", Path: "/m/t1.mp3"})
	t2 := seedTrack(t, a, domain.MatchedTrack{Title: "T2", Artist: "B", Path: "/m/t2.mp3"})

	tracks := []domain.MatchedTrack{{ID: t1}, {ID: t2}}
	if err := a.AddTracks(ctx, id, tracks, ports.AddOptions{}); err != nil {
		t.Fatalf("AddTracks: %v", err)
	}

	ids, err := a.PlaylistTrackIDs(ctx, id)
	if err != nil {
		t.Fatalf("PlaylistTrackIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != t1 || ids[1] != t2 {
		t.Fatalf("playlist order = %v, want [%d %d]", ids, t1, t2)
	}
}

func TestAdapter_AddTracksIgnoreDupes(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	id, err := a.CreatePlaylist(ctx, "Mix", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	t1 := seedTrack(t, a, domain.MatchedTrack{Title: "T1", Artist: "B", Path: "/m/t1.mp3"})
	t2 := seedTrack(t, a, domain.MatchedTrack{Title: "T2", Artist: "B", Path: "/m/t2.mp3"})

	if err := a.AddTracks(ctx, id, []domain.MatchedTrack{{ID: t1}}, ports.AddOptions{}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := a.AddTracks(ctx, id, []domain.MatchedTrack{{ID: t1}, {ID: t2}}, ports.AddOptions{IgnoreDupes: true}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	ids, err := a.PlaylistTrackIDs(ctx, id)
	if err != nil {
		t.Fatalf("PlaylistTrackIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("dupes not ignored: %v", ids)
	}
}

func TestAdapter_AddTracksClearFirst(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	id, err := a.CreatePlaylist(ctx, "Mix", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	t1 := seedTrack(t, a, domain.MatchedTrack{Title: "T1", Artist: "B", Path: "/m/t1.mp3"})
	t2 := seedTrack(t, a, domain.MatchedTrack{Title: "T2", Artist: "B", Path: "/m/t2.mp3"})

	if err := a.AddTracks(ctx, id, []domain.MatchedTrack{{ID: t1}}, ports.AddOptions{}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := a.AddTracks(ctx, id, []domain.MatchedTrack{{ID: t2}}, ports.AddOptions{ClearFirst: true}); err != nil {
		t.Fatalf("overwrite add: %v", err)
	}

	ids, err := a.PlaylistTrackIDs(ctx, id)
	if err != nil {
		t.Fatalf("PlaylistTrackIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != t2 {
		t.Fatalf("overwrite left %v, want [%d]", ids, t2)
	}
}

func TestAdapter_AddTracksUnknownPlaylist(t *testing.T) {
	a := newTestAdapter(t)

	err := a.AddTracks(context.Background(), "missing", []domain.MatchedTrack{{ID: 1}}, ports.AddOptions{})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestAdapter_EnqueueAppendsAndClears(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	t1 := seedTrack(t, a, domain.MatchedTrack{Title: "T1", Artist: "B", Path: "/m/t1.mp3"})
	t2 := seedTrack(t, a, domain.MatchedTrack{Title: "T2", Artist: "B", Path: "/m/t2.mp3"})
	t3 := seedTrack(t, a, domain.MatchedTrack{Title: "T3", Artist: "B", Path: "/m/t3.mp3"})

	if err := a.Enqueue(ctx, []domain.MatchedTrack{{ID: t1}, {ID: t2}}, ports.EnqueueOptions{}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	ids, err := a.QueueTrackIDs(ctx)
	if err != nil {
		t.Fatalf("QueueTrackIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != t1 || ids[1] != t2 {
		t.Fatalf("queue = %v", ids)
	}

	if err := a.Enqueue(ctx, []domain.MatchedTrack{{ID: t3}}, ports.EnqueueOptions{Clear: true, SaveHistory: true}); err != nil {
		t.Fatalf("Enqueue with clear: %v", err)
	}
	ids, err = a.QueueTrackIDs(ctx)
	if err != nil {
		t.Fatalf("QueueTrackIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != t3 {
		t.Fatalf("cleared queue = %v, want [%d]", ids, t3)
	}

	var history int
	if err := a.db.QueryRow("SELECT COUNT(1) FROM queue_history").Scan(&history); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if history != 2 {
		t.Fatalf("history rows = %d, want 2", history)
	}
}
