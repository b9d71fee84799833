package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

func newTestClient(url string) *Client {
	return NewClient(Config{BaseURL: url}, zerolog.Nop())
}

func TestResolveTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracks/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("artist"); got != "Artist A" {
			t.Errorf("artist = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"data":[{"id":"trk-1","artist":"Artist A","title":"Song"}],"total":1}}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).ResolveTrack(context.Background(), "Artist A", "Song")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "trk-1" {
		t.Fatalf("id = %q, want trk-1", id)
	}
}

func TestResolveTrack_EmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"data":[],"total":0}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ResolveTrack(context.Background(), "Nobody", "Nothing")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAudioFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio-features/trk-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"energy":0.8,"valence":0.6,"danceability":0.7,"acousticness":0.1,"instrumentalness":0.05,"tempo":128}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).AudioFeatures(context.Background(), "trk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.FeatureVector{Energy: 0.8, Valence: 0.6, Danceability: 0.7, Acousticness: 0.1, Instrumentalness: 0.05, Tempo: 128}
	if got != want {
		t.Fatalf("features = %+v, want %+v", got, want)
	}
}

func TestRecommend_SendsSeedsAndTargets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("seed_tracks"); got != "a,b" {
			t.Errorf("seed_tracks = %q", got)
		}
		if got := q.Get("target_energy"); got != "0.900" {
			t.Errorf("target_energy = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"data":[
			{"artist":"B","title":"T1","features":{"energy":0.9}},
			{"artist":"","title":"dropme"}
		],"total":2}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Recommend(context.Background(), []string{"a", "b"},
		domain.FeatureVector{Energy: 0.9}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got[0].Artist != "B" || got[0].Features.Energy != 0.9 {
		t.Fatalf("recommendation = %+v", got[0])
	}
}

func TestRecommend_CapsSeedsAtFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("seed_tracks"); got != "a,b,c,d,e" {
			t.Errorf("seed_tracks = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"data":[],"total":0}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Recommend(context.Background(),
		[]string{"a", "b", "c", "d", "e", "f", "g"}, domain.FeatureVector{}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckStatus_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	c.rc.SetRetryCount(0)
	_, err := c.ResolveTrack(context.Background(), "A", "T")
	if !errors.Is(err, ports.ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}
}
