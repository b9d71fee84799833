package discover

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// ArtistStrategy expands seed artists into their similarity neighborhood
// and gathers top tracks per pooled artist.
type ArtistStrategy struct {
	sim ports.SimilarityProvider
	log zerolog.Logger
}

var _ Strategy = (*ArtistStrategy)(nil)

// NewArtist constructs the artist-mode strategy.
func NewArtist(sim ports.SimilarityProvider, log zerolog.Logger) *ArtistStrategy {
	return &ArtistStrategy{sim: sim, log: log.With().Str("strategy", "artist").Logger()}
}

// Discover builds a deduplicated, blacklist-filtered artist pool from the
// seeds' similar artists, then fetches top tracks per artist.
func (s *ArtistStrategy) Discover(ctx context.Context, seeds []domain.Seed, cfg Config) []domain.Candidate {
	seeds = domain.DedupeSeeds(seeds)
	if cfg.SeedLimit > 0 && len(seeds) > cfg.SeedLimit {
		seeds = seeds[:cfg.SeedLimit]
	}

	pool := s.artistPool(ctx, seeds, cfg)
	return s.fetchTopTracks(ctx, pool, cfg)
}

// artistPool returns artist names in discovery-relevance order, deduped and
// blacklist-filtered.
func (s *ArtistStrategy) artistPool(ctx context.Context, seeds []domain.Seed, cfg Config) []string {
	blocked := blacklistSet(cfg.Blacklist)
	seen := make(map[string]struct{})
	var pool []string

	add := func(name string) {
		key := normalizeName(name)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		if _, bad := blocked[key]; bad {
			return
		}
		seen[key] = struct{}{}
		pool = append(pool, name)
	}

	for _, seed := range seeds {
		if seed.Artist == "" {
			continue
		}
		if cfg.IncludeSeedArtist {
			add(seed.Artist)
		}

		similar, err := s.sim.SimilarArtists(ctx, seed.Artist, cfg.SimilarLimit)
		if err != nil {
			s.logSeedFailure(seed.Artist, err)
			continue
		}
		for _, a := range similar {
			add(a.Name)
		}
	}

	return pool
}

func (s *ArtistStrategy) fetchTopTracks(ctx context.Context, pool []string, cfg Config) []domain.Candidate {
	var out []domain.Candidate
	for _, artist := range pool {
		if cfg.TotalBudget > 0 && domain.TrackCount(out) >= cfg.TotalBudget {
			break
		}

		top, err := s.sim.TopTracks(ctx, artist, cfg.TracksPerArtist)
		if err != nil {
			s.logSeedFailure(artist, err)
			continue
		}
		if len(top) == 0 {
			continue
		}

		tracks := make([]domain.CandidateTrack, 0, len(top))
		for _, t := range top {
			tracks = append(tracks, domain.CandidateTrack{
				Title:     t.Title,
				Playcount: t.Playcount,
				Rank:      t.Rank,
			})
		}
		out = append(out, domain.Candidate{Artist: artist, Tracks: tracks})
	}
	return out
}

func (s *ArtistStrategy) logSeedFailure(entity string, err error) {
	logFailure(s.log, entity, err)
}
