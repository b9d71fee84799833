package discover

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// maxSeedIdentifiers bounds how many resolved seed IDs steer one
// recommendation request.
const maxSeedIdentifiers = 5

// SeededStrategy resolves seed tracks to feature-service identifiers,
// aggregates their audio-feature vectors, and asks the service for
// recommendations steered by both.
type SeededStrategy struct {
	features ports.FeatureProvider
	log      zerolog.Logger
}

var _ Strategy = (*SeededStrategy)(nil)

// NewSeeded constructs the profile-seeded strategy.
func NewSeeded(features ports.FeatureProvider, log zerolog.Logger) *SeededStrategy {
	return &SeededStrategy{features: features, log: log.With().Str("strategy", "seeded").Logger()}
}

// Discover returns an empty pool when no seed resolves; it never
// substitutes a blind guess for missing feature data.
func (s *SeededStrategy) Discover(ctx context.Context, seeds []domain.Seed, cfg Config) []domain.Candidate {
	seeds = domain.DedupeSeeds(seeds)
	if cfg.SeedLimit > 0 && len(seeds) > cfg.SeedLimit {
		seeds = seeds[:cfg.SeedLimit]
	}

	ids, vectors := s.resolveSeeds(ctx, seeds)
	if len(ids) == 0 {
		s.log.Debug().Int("seeds", len(seeds)).Msg("no seed resolved, yielding empty pool")
		return nil
	}

	target := domain.MeanVector(vectors)
	if len(ids) > maxSeedIdentifiers {
		ids = ids[:maxSeedIdentifiers]
	}

	limit := cfg.TotalBudget
	if limit <= 0 {
		limit = 50
	}

	recs, err := s.features.Recommend(ctx, ids, target, limit)
	if err != nil {
		logFailure(s.log, "recommendations", err)
		return nil
	}

	return filterBlacklist(groupByArtist(recs), cfg.Blacklist)
}

func (s *SeededStrategy) resolveSeeds(ctx context.Context, seeds []domain.Seed) ([]string, []domain.FeatureVector) {
	var ids []string
	var vectors []domain.FeatureVector

	for _, seed := range seeds {
		if seed.Artist == "" || seed.Title == "" {
			continue
		}

		id, err := s.features.ResolveTrack(ctx, seed.Artist, seed.Title)
		if err != nil {
			logFailure(s.log, seed.Artist+" - "+seed.Title, err)
			continue
		}

		vector, err := s.features.AudioFeatures(ctx, id)
		if err != nil {
			logFailure(s.log, id, err)
			continue
		}

		ids = append(ids, id)
		vectors = append(vectors, vector)
	}

	return ids, vectors
}

// filterBlacklist drops blacklisted artists from a candidate pool.
func filterBlacklist(candidates []domain.Candidate, blacklist []string) []domain.Candidate {
	if len(blacklist) == 0 {
		return candidates
	}
	blocked := blacklistSet(blacklist)
	out := candidates[:0]
	for _, c := range candidates {
		if _, bad := blocked[normalizeName(c.Artist)]; bad {
			continue
		}
		out = append(out, c)
	}
	return out
}
