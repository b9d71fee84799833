package match

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

type stubCatalog struct {
	rows map[string][]domain.MatchedTrack
	err  error
}

func (s *stubCatalog) ArtistTracks(ctx context.Context, artist string) ([]domain.MatchedTrack, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[artist], nil
}

func TestMatchTitle_Passes(t *testing.T) {
	rows := []domain.MatchedTrack{
		{ID: 1, Title: "Song (Remastered 2011)", Artist: "X"},
		{ID: 2, Title: "Another Tune", Artist: "X"},
		{ID: 3, Title: "Long Winding Story (Live at the Hall)", Artist: "X"},
	}

	tests := []struct {
		name     string
		title    string
		wantPass Pass
		wantID   int64
	}{
		{
			name:     "exact pass ignores case",
			title:    "another tune",
			wantPass: PassExact,
			wantID:   2,
		},
		{
			name:     "normalized pass strips remaster qualifier",
			title:    "Song",
			wantPass: PassNormalized,
			wantID:   1,
		},
		{
			name:     "partial pass survives heavy retitling",
			title:    "Winding Story",
			wantPass: PassPartial,
			wantID:   3,
		},
		{
			name:     "no pass for unrelated title",
			title:    "Completely Different",
			wantPass: PassNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pass, hits := matchTitle(rows, tc.title)
			if pass != tc.wantPass {
				t.Fatalf("pass = %v, want %v", pass, tc.wantPass)
			}
			if tc.wantPass == PassNone {
				if len(hits) != 0 {
					t.Fatalf("expected no hits, got %d", len(hits))
				}
				return
			}
			if len(hits) == 0 || hits[0].ID != tc.wantID {
				t.Fatalf("hits = %+v, want leading ID %d", hits, tc.wantID)
			}
		})
	}
}

func TestMatchTitle_Deterministic(t *testing.T) {
	rows := []domain.MatchedTrack{
		{ID: 1, Title: "Echoes (Remastered)", Artist: "X"},
		{ID: 2, Title: "Echoes", Artist: "X"},
	}

	firstPass, firstHits := matchTitle(rows, "Echoes")
	for i := 0; i < 10; i++ {
		pass, hits := matchTitle(rows, "Echoes")
		if pass != firstPass {
			t.Fatalf("pass changed between calls: %v vs %v", pass, firstPass)
		}
		if hits[0].ID != firstHits[0].ID {
			t.Fatalf("winning record changed between calls")
		}
	}
}

func TestMatch_PrefersBitrateThenRating(t *testing.T) {
	catalog := &stubCatalog{rows: map[string][]domain.MatchedTrack{
		"X": {
			{ID: 1, Title: "Song", Bitrate: 128, Rating: 3},
			{ID: 2, Title: "Song", Bitrate: 320, Rating: 2},
		},
	}}
	m := New(catalog, zerolog.Nop())

	got, err := m.Match(context.Background(), "X", []string{"Song"}, ports.MatchOptions{Best: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hits := got["Song"]
	if len(hits) != 1 || hits[0].ID != 2 {
		t.Fatalf("expected 320kbps record to win, got %+v", hits)
	}
}

func TestMatch_RatingFloor(t *testing.T) {
	catalog := &stubCatalog{rows: map[string][]domain.MatchedTrack{
		"X": {
			{ID: 1, Title: "Low", Rating: 1},
			{ID: 2, Title: "High", Rating: 4},
			{ID: 3, Title: "Unrated", Rating: 0},
		},
	}}
	m := New(catalog, zerolog.Nop())

	tests := []struct {
		name      string
		opts      ports.MatchOptions
		titles    []string
		wantFound []string
	}{
		{
			name:      "floor drops low and unrated",
			opts:      ports.MatchOptions{MinRating: 3},
			titles:    []string{"Low", "High", "Unrated"},
			wantFound: []string{"High"},
		},
		{
			name:      "allow unknown admits unrated",
			opts:      ports.MatchOptions{MinRating: 3, AllowUnknown: true},
			titles:    []string{"Low", "High", "Unrated"},
			wantFound: []string{"High", "Unrated"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Match(context.Background(), "X", tc.titles, tc.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.wantFound) {
				t.Fatalf("found %d titles, want %d (%v)", len(got), len(tc.wantFound), got)
			}
			for _, title := range tc.wantFound {
				if _, ok := got[title]; !ok {
					t.Fatalf("missing expected title %q", title)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Song (Remastered 2011)", "song"},
		{"Café del Mar", "cafe del mar"},
		{"Track feat. Somebody", "track somebody"},
		{"  Spaced   Out  ", "spaced out"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
