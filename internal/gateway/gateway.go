// Package gateway mediates every outbound service call: per-run response
// caching, in-flight request deduplication, and a minimum-interval throttle
// shared across runs. Retry and timeout policy live in the service clients.
package gateway

import (
	"context"
	"strconv"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Gateway owns the upstream clients and the per-service throttles.
type Gateway struct {
	similarity ports.SimilarityProvider
	features   ports.FeatureProvider

	simLimiter  *Limiter
	featLimiter *Limiter
}

// New constructs a Gateway over the raw service clients.
func New(similarity ports.SimilarityProvider, features ports.FeatureProvider, simLimiter, featLimiter *Limiter) *Gateway {
	return &Gateway{
		similarity:  similarity,
		features:    features,
		simLimiter:  simLimiter,
		featLimiter: featLimiter,
	}
}

// ForRun returns run-scoped providers sharing one fresh cache. Two racing
// invocations each get their own cache instance.
func (g *Gateway) ForRun() (ports.SimilarityProvider, ports.FeatureProvider) {
	cache := NewRunCache()
	return &cachedSimilarity{next: g.similarity, cache: cache, limiter: g.simLimiter},
		&cachedFeatures{next: g.features, cache: cache, limiter: g.featLimiter}
}

type cachedSimilarity struct {
	next    ports.SimilarityProvider
	cache   *RunCache
	limiter *Limiter
}

var _ ports.SimilarityProvider = (*cachedSimilarity)(nil)

func (s *cachedSimilarity) SimilarArtists(ctx context.Context, artist string, limit int) ([]ports.SimilarArtist, error) {
	key := Key("similar-artists", artist, strconv.Itoa(limit))
	return Do(s.cache, ctx, key, func(ctx context.Context) ([]ports.SimilarArtist, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.next.SimilarArtists(ctx, artist, limit)
	})
}

func (s *cachedSimilarity) SimilarTracks(ctx context.Context, artist, title string, limit int) ([]ports.SimilarTrack, error) {
	key := Key("similar-tracks", artist, title, strconv.Itoa(limit))
	return Do(s.cache, ctx, key, func(ctx context.Context) ([]ports.SimilarTrack, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.next.SimilarTracks(ctx, artist, title, limit)
	})
}

func (s *cachedSimilarity) TopTracks(ctx context.Context, artist string, limit int) ([]ports.TopTrack, error) {
	key := Key("top-tracks", artist, strconv.Itoa(limit))
	return Do(s.cache, ctx, key, func(ctx context.Context) ([]ports.TopTrack, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.next.TopTracks(ctx, artist, limit)
	})
}

func (s *cachedSimilarity) ArtistTags(ctx context.Context, artist string, limit int) ([]ports.Tag, error) {
	key := Key("artist-tags", artist, strconv.Itoa(limit))
	return Do(s.cache, ctx, key, func(ctx context.Context) ([]ports.Tag, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.next.ArtistTags(ctx, artist, limit)
	})
}

func (s *cachedSimilarity) TagTopArtists(ctx context.Context, tag string, limit int) ([]ports.RankedArtist, error) {
	key := Key("tag-top-artists", tag, strconv.Itoa(limit))
	return Do(s.cache, ctx, key, func(ctx context.Context) ([]ports.RankedArtist, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return s.next.TagTopArtists(ctx, tag, limit)
	})
}

type cachedFeatures struct {
	next    ports.FeatureProvider
	cache   *RunCache
	limiter *Limiter
}

var _ ports.FeatureProvider = (*cachedFeatures)(nil)

func (f *cachedFeatures) ResolveTrack(ctx context.Context, artist, title string) (string, error) {
	key := Key("resolve-track", artist, title)
	return Do(f.cache, ctx, key, func(ctx context.Context) (string, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return f.next.ResolveTrack(ctx, artist, title)
	})
}

func (f *cachedFeatures) AudioFeatures(ctx context.Context, trackID string) (domain.FeatureVector, error) {
	key := Key("audio-features", trackID)
	return Do(f.cache, ctx, key, func(ctx context.Context) (domain.FeatureVector, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return domain.FeatureVector{}, err
		}
		return f.next.AudioFeatures(ctx, trackID)
	})
}

func (f *cachedFeatures) Recommend(ctx context.Context, seedIDs []string, target domain.FeatureVector, limit int) ([]ports.Recommendation, error) {
	parts := append([]string{"recommend"}, seedIDs...)
	parts = append(parts, vectorKey(target), strconv.Itoa(limit))
	key := Key(parts...)
	return Do(f.cache, ctx, key, func(ctx context.Context) ([]ports.Recommendation, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return f.next.Recommend(ctx, seedIDs, target, limit)
	})
}

func vectorKey(v domain.FeatureVector) string {
	format := func(f float64) string {
		return strconv.FormatFloat(f, 'f', 3, 64)
	}
	return format(v.Energy) + "," + format(v.Valence) + "," + format(v.Danceability) + "," +
		format(v.Acousticness) + "," + format(v.Instrumentalness) + "," + format(v.Tempo)
}
