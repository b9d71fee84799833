package discover

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// MoodStrategy needs no seeds: it resolves a named preset to a fixed
// audio-feature target and asks the feature service for recommendations.
// Combining with seed-derived discovery is the caller's responsibility.
type MoodStrategy struct {
	features ports.FeatureProvider
	log      zerolog.Logger
}

var _ Strategy = (*MoodStrategy)(nil)

// NewMood constructs the mood/activity strategy.
func NewMood(features ports.FeatureProvider, log zerolog.Logger) *MoodStrategy {
	return &MoodStrategy{features: features, log: log.With().Str("strategy", "mood").Logger()}
}

// Discover yields an empty pool for an unknown preset name and logs the
// condition; it never substitutes a default preset.
func (s *MoodStrategy) Discover(ctx context.Context, _ []domain.Seed, cfg Config) []domain.Candidate {
	target, ok := domain.ProfilePreset(cfg.Preset)
	if !ok {
		s.log.Warn().Str("preset", cfg.Preset).Msg("unknown profile preset, yielding empty pool")
		return nil
	}

	limit := cfg.TotalBudget
	if limit <= 0 {
		limit = 50
	}

	recs, err := s.features.Recommend(ctx, nil, target, limit)
	if err != nil {
		logFailure(s.log, cfg.Preset, err)
		return nil
	}

	return filterBlacklist(groupByArtist(recs), cfg.Blacklist)
}
