package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

type countingSimilarity struct {
	calls int32
	block chan struct{}
	err   error
}

func (c *countingSimilarity) SimilarArtists(ctx context.Context, artist string, limit int) ([]ports.SimilarArtist, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	return []ports.SimilarArtist{{Name: artist + "-sim", Match: 0.9}}, nil
}

func (c *countingSimilarity) SimilarTracks(ctx context.Context, artist, title string, limit int) ([]ports.SimilarTrack, error) {
	return nil, nil
}

func (c *countingSimilarity) TopTracks(ctx context.Context, artist string, limit int) ([]ports.TopTrack, error) {
	return nil, nil
}

func (c *countingSimilarity) ArtistTags(ctx context.Context, artist string, limit int) ([]ports.Tag, error) {
	return nil, nil
}

func (c *countingSimilarity) TagTopArtists(ctx context.Context, tag string, limit int) ([]ports.RankedArtist, error) {
	return nil, nil
}

type nopFeatures struct{}

func (nopFeatures) ResolveTrack(ctx context.Context, artist, title string) (string, error) {
	return "", ports.ErrNotFound
}

func (nopFeatures) AudioFeatures(ctx context.Context, trackID string) (domain.FeatureVector, error) {
	return domain.FeatureVector{}, nil
}

func (nopFeatures) Recommend(ctx context.Context, seedIDs []string, target domain.FeatureVector, limit int) ([]ports.Recommendation, error) {
	return nil, nil
}

func TestRunCache_MemoizesResponses(t *testing.T) {
	upstream := &countingSimilarity{}
	g := New(upstream, nopFeatures{}, NewLimiter(0), NewLimiter(0))
	sim, _ := g.ForRun()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		got, err := sim.SimilarArtists(ctx, "Artist A", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Artist A-sim" {
			t.Fatalf("unexpected response: %+v", got)
		}
	}

	if n := atomic.LoadInt32(&upstream.calls); n != 1 {
		t.Fatalf("upstream called %d times, want 1", n)
	}
}

func TestRunCache_MemoizesFailures(t *testing.T) {
	upstream := &countingSimilarity{err: errors.New("boom")}
	g := New(upstream, nopFeatures{}, NewLimiter(0), NewLimiter(0))
	sim, _ := g.ForRun()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := sim.SimilarArtists(ctx, "Artist A", 10); err == nil {
			t.Fatal("expected cached failure")
		}
	}

	if n := atomic.LoadInt32(&upstream.calls); n != 1 {
		t.Fatalf("failing query issued %d outbound calls, want 1", n)
	}
}

func TestRunCache_InFlightDeduplication(t *testing.T) {
	upstream := &countingSimilarity{block: make(chan struct{})}
	g := New(upstream, nopFeatures{}, NewLimiter(0), NewLimiter(0))
	sim, _ := g.ForRun()

	ctx := context.Background()
	var wg sync.WaitGroup
	results := make([][]ports.SimilarArtist, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, _ := sim.SimilarArtists(ctx, "Artist A", 10)
			results[i] = got
		}(i)
	}

	// Let the goroutines pile onto the single in-flight request.
	time.Sleep(20 * time.Millisecond)
	close(upstream.block)
	wg.Wait()

	if n := atomic.LoadInt32(&upstream.calls); n != 1 {
		t.Fatalf("concurrent identical queries issued %d calls, want 1", n)
	}
	for i, got := range results {
		if len(got) != 1 {
			t.Fatalf("goroutine %d got %+v", i, got)
		}
	}
}

func TestRunsDoNotShareCaches(t *testing.T) {
	upstream := &countingSimilarity{}
	g := New(upstream, nopFeatures{}, NewLimiter(0), NewLimiter(0))

	ctx := context.Background()
	simA, _ := g.ForRun()
	simB, _ := g.ForRun()
	_, _ = simA.SimilarArtists(ctx, "Artist A", 10)
	_, _ = simB.SimilarArtists(ctx, "Artist A", 10)

	if n := atomic.LoadInt32(&upstream.calls); n != 2 {
		t.Fatalf("separate runs shared a cache: %d calls, want 2", n)
	}
}

func TestLimiter_EnforcesSpacing(t *testing.T) {
	const interval = 50 * time.Millisecond
	l := NewLimiter(interval)

	clock := time.Unix(1000, 0)
	var slept time.Duration
	l.now = func() time.Time { return clock }
	l.sleep = func(ctx context.Context, d time.Duration) error {
		slept += d
		clock = clock.Add(d)
		return nil
	}

	const n = 5
	for i := 0; i < n; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	}

	if want := time.Duration(n-1) * interval; slept < want {
		t.Fatalf("total spacing %v, want at least %v", slept, want)
	}
}

func TestLimiter_CanceledContext(t *testing.T) {
	l := NewLimiter(time.Minute)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first wait should be immediate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
}
