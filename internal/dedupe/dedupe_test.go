package dedupe

import (
	"reflect"
	"testing"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

func TestSet_Idempotent(t *testing.T) {
	tracks := []domain.MatchedTrack{
		{ID: 1, Title: "A", Artist: "X"},
		{ID: 2, Title: "B", Artist: "X"},
		{ID: 1, Title: "A", Artist: "X"},
		{ID: 3, Title: "C", Artist: "Y"},
	}

	run := func() []domain.MatchedTrack {
		s := NewSet(false)
		for i, tr := range tracks {
			s.Add(tr, 0, 0, i)
		}
		return s.Tracks()
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("dedup not idempotent: %+v vs %+v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 distinct tracks, got %d", len(first))
	}
}

func TestSet_QualityUpgradeKeepsBetterRip(t *testing.T) {
	s := NewSet(false)
	low := domain.MatchedTrack{Path: "/m/song.mp3", Title: "Song", Bitrate: 128, Rating: 3}
	high := domain.MatchedTrack{Path: "/m/song.mp3", Title: "Song", Bitrate: 320, Rating: 2}

	if added := s.Add(low, 0, 0, 0); !added {
		t.Fatal("first add should be new")
	}
	if added := s.Add(high, 0, 0, 1); added {
		t.Fatal("duplicate key must not count as new")
	}

	got := s.Tracks()
	if len(got) != 1 || got[0].Bitrate != 320 {
		t.Fatalf("expected the 320kbps rip to be retained, got %+v", got)
	}
}

func TestSet_RankingOrdersByScore(t *testing.T) {
	s := NewSet(true)
	s.Add(domain.MatchedTrack{ID: 1, Title: "Quiet"}, 100, 0, 0)
	s.Add(domain.MatchedTrack{ID: 2, Title: "Huge"}, 5000000, 0, 1)
	s.Add(domain.MatchedTrack{ID: 3, Title: "Mid"}, 10000, 0, 2)

	got := s.Tracks()
	wantOrder := []int64{2, 3, 1}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d = ID %d, want %d (full: %+v)", i, got[i].ID, id, got)
		}
	}
}

func TestSet_DuplicateRaisesScoreWithoutReplacing(t *testing.T) {
	s := NewSet(true)
	first := domain.MatchedTrack{ID: 7, Title: "Song", Bitrate: 256}
	again := domain.MatchedTrack{ID: 7, Title: "Song", Bitrate: 128}

	s.Add(domain.MatchedTrack{ID: 8, Title: "Other"}, 2000000, 0, 0)
	s.Add(first, 100, 0, 1)
	// Same key, much higher playcount, worse bitrate.
	s.Add(again, 9000000, 0, 2)

	got := s.Tracks()
	if got[0].ID != 7 {
		t.Fatalf("score update should reorder ID 7 first, got %+v", got)
	}
	if got[0].Bitrate != 256 {
		t.Fatalf("instance must not be replaced by a worse rip, got bitrate %d", got[0].Bitrate)
	}
}

func TestPopularityScoreFallbacks(t *testing.T) {
	if s := popularityScore(0, 5, 0); s != 95 {
		t.Errorf("rank fallback = %v, want 95", s)
	}
	if s := popularityScore(0, 0, 10); s != 90 {
		t.Errorf("position fallback = %v, want 90", s)
	}
	if s := popularityScore(10000000, 0, 0); s != 100 {
		t.Errorf("saturated playcount = %v, want 100", s)
	}
}
