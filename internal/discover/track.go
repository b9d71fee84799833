package discover

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// TrackStrategy fetches tracks similar to each seed track directly,
// preserving the service's similarity scores for ranking.
type TrackStrategy struct {
	sim ports.SimilarityProvider
	log zerolog.Logger
}

var _ Strategy = (*TrackStrategy)(nil)

// NewTrack constructs the track-mode strategy.
func NewTrack(sim ports.SimilarityProvider, log zerolog.Logger) *TrackStrategy {
	return &TrackStrategy{sim: sim, log: log.With().Str("strategy", "track").Logger()}
}

// Discover groups similar tracks by their artist. With IncludeSeedTrack the
// seed itself joins its pool at perfect score.
func (s *TrackStrategy) Discover(ctx context.Context, seeds []domain.Seed, cfg Config) []domain.Candidate {
	seeds = domain.DedupeSeeds(seeds)
	if cfg.SeedLimit > 0 && len(seeds) > cfg.SeedLimit {
		seeds = seeds[:cfg.SeedLimit]
	}

	index := make(map[string]int)
	var out []domain.Candidate

	add := func(artist, title string, match float64, playcount int) {
		key := normalizeName(artist)
		at, ok := index[key]
		if !ok {
			at = len(out)
			index[key] = at
			out = append(out, domain.Candidate{Artist: artist})
		}
		out[at].Tracks = append(out[at].Tracks, domain.CandidateTrack{
			Title:     title,
			Match:     match,
			Playcount: playcount,
		})
	}

	blocked := blacklistSet(cfg.Blacklist)
	for _, seed := range seeds {
		if seed.Artist == "" || seed.Title == "" {
			continue
		}

		if cfg.IncludeSeedTrack {
			add(seed.Artist, seed.Title, 1.0, 0)
		}

		similar, err := s.sim.SimilarTracks(ctx, seed.Artist, seed.Title, cfg.SimilarLimit)
		if err != nil {
			logFailure(s.log, seed.Artist+" - "+seed.Title, err)
			continue
		}

		for _, t := range similar {
			if _, bad := blocked[normalizeName(t.Artist)]; bad {
				continue
			}
			add(t.Artist, t.Title, t.Match, t.Playcount)
			if cfg.TotalBudget > 0 && domain.TrackCount(out) >= cfg.TotalBudget {
				return out
			}
		}
	}

	return out
}
