// Package discover holds the pluggable discovery strategies. Each strategy
// consumes seeds plus configuration and produces a candidate pool through
// the service gateway, degrading per seed instead of failing a run.
package discover

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Config bounds a discovery run. The orchestrator fills it from settings,
// with conservative caps in auto mode.
type Config struct {
	// SeedLimit caps how many seeds a strategy consumes.
	SeedLimit int

	// SimilarLimit caps similar-entity fetches per seed.
	SimilarLimit int

	// TracksPerArtist caps top-track fetches per pooled artist.
	TracksPerArtist int

	// TotalBudget caps the candidate-track total of the whole pool.
	TotalBudget int

	// TagCount caps how many weighted tags genre discovery expands.
	TagCount int

	// IncludeSeedArtist admits the seed artists into their own pool.
	IncludeSeedArtist bool

	// IncludeSeedTrack self-seeds track discovery at perfect score.
	IncludeSeedTrack bool

	// Blacklist drops artists by normalized name.
	Blacklist []string

	// Preset names the mood/activity profile.
	Preset string

	// BlendRatio is the fraction of blended output drawn from
	// seed-derived discovery.
	BlendRatio float64
}

// Strategy is the common contract: never errors, returns whatever
// candidates were gathered, possibly none.
type Strategy interface {
	Discover(ctx context.Context, seeds []domain.Seed, cfg Config) []domain.Candidate
}

// logFailure records a per-seed discovery failure. Not-found conditions get
// the lighter, specific hint the error taxonomy calls for.
func logFailure(log zerolog.Logger, entity string, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		log.Debug().Str("entity", entity).Msg("service does not know entity")
		return
	}
	log.Warn().Str("entity", entity).Err(err).Msg("discovery call failed, continuing")
}

// blacklistSet folds the configured blacklist for lookups.
func blacklistSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizeName(n)] = struct{}{}
	}
	return set
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// groupByArtist folds service recommendations into per-artist candidates,
// preserving the order artists first appear in.
func groupByArtist(recs []ports.Recommendation) []domain.Candidate {
	index := make(map[string]int)
	var out []domain.Candidate
	for _, r := range recs {
		key := normalizeName(r.Artist)
		at, ok := index[key]
		if !ok {
			at = len(out)
			index[key] = at
			out = append(out, domain.Candidate{Artist: r.Artist})
		}
		out[at].Tracks = append(out[at].Tracks, domain.CandidateTrack{Title: r.Title})
	}
	return out
}
