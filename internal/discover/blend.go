package discover

import (
	"math"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// Blend merges a seed-derived candidate pool with a profile-derived pool at
// ratio r, the fraction allocated to seed-derived results. Both inputs are
// already ordered by discovery relevance; the outputs are interleaved
// index-by-index so neither source clusters at the list head. r = 0 yields
// pure profile discovery, r = 1 pure seed-similarity discovery.
func Blend(seedPool, profilePool []domain.Candidate, targetTotal int, r float64) []domain.Candidate {
	if targetTotal <= 0 {
		return nil
	}
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}

	seedCount := int(math.Ceil(float64(targetTotal) * r))
	profileCount := targetTotal - seedCount

	seedPool = dedupePool(seedPool)
	profilePool = dedupePool(profilePool)

	if seedCount > len(seedPool) {
		seedCount = len(seedPool)
	}
	if profileCount > len(profilePool) {
		profileCount = len(profilePool)
	}
	seedPool = seedPool[:seedCount]
	profilePool = profilePool[:profileCount]

	out := make([]domain.Candidate, 0, seedCount+profileCount)
	for i := 0; i < seedCount || i < profileCount; i++ {
		if i < seedCount {
			out = append(out, seedPool[i])
		}
		if i < profileCount {
			out = append(out, profilePool[i])
		}
	}
	return out
}

// BlendCounts exposes the allocation arithmetic for callers sizing their
// source pools up front.
func BlendCounts(targetTotal int, r float64) (seedCount, profileCount int) {
	if targetTotal <= 0 {
		return 0, 0
	}
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	seedCount = int(math.Ceil(float64(targetTotal) * r))
	return seedCount, targetTotal - seedCount
}

// dedupePool drops repeated artists, keeping first occurrences in order.
func dedupePool(pool []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(pool))
	out := make([]domain.Candidate, 0, len(pool))
	for _, c := range pool {
		key := normalizeName(c.Artist)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
