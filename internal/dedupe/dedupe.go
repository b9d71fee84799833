// Package dedupe collapses matched tracks to canonical identities across a
// whole run and optionally reorders them by a popularity score.
package dedupe

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// entry pairs a kept track with its running score.
type entry struct {
	track domain.MatchedTrack
	score float64
	order int
}

// Set accumulates matched tracks across strategies, collapsing duplicates
// by DedupKey. The first-seen instance for a key is kept; a later duplicate
// only replaces it when it is strictly better quality, and with ranking
// enabled a later duplicate may raise the score without replacing the
// instance.
type Set struct {
	ranking bool
	seen    map[string]int
	entries []entry
}

// NewSet constructs a dedup set. ranking enables score-ordered output.
func NewSet(ranking bool) *Set {
	return &Set{
		ranking: ranking,
		seen:    make(map[string]int),
	}
}

// Add offers a track with the popularity signals gathered during
// discovery. index is the track's position in its strategy's output and
// drives the fallback score. Returns true when the track was new.
func (s *Set) Add(t domain.MatchedTrack, playcount, rank, index int) bool {
	score := popularityScore(playcount, rank, index)
	key := t.DedupKey()

	if at, dup := s.seen[key]; dup {
		if t.Better(s.entries[at].track) {
			s.entries[at].track = t
		}
		if s.ranking && score > s.entries[at].score {
			s.entries[at].score = score
		}
		return false
	}

	s.seen[key] = len(s.entries)
	s.entries = append(s.entries, entry{track: t, score: score, order: len(s.entries)})
	return true
}

// Len returns the number of distinct tracks collected.
func (s *Set) Len() int {
	return len(s.entries)
}

// Tracks returns the collected tracks: score-descending when ranking is
// enabled, insertion order otherwise.
func (s *Set) Tracks() []domain.MatchedTrack {
	ordered := make([]entry, len(s.entries))
	copy(ordered, s.entries)

	if s.ranking {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].score > ordered[j].score
		})
	}

	out := make([]domain.MatchedTrack, len(ordered))
	for i, e := range ordered {
		out[i] = e.track
	}
	return out
}

// Shuffle returns the collected tracks in random order.
func (s *Set) Shuffle() []domain.MatchedTrack {
	out := s.Tracks()
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// popularityScore normalizes a playcount logarithmically into 0..100.
// Without a playcount it falls back to rank, then to position.
func popularityScore(playcount, rank, index int) float64 {
	if playcount > 0 {
		// log10 scale: 10M plays saturate the score.
		score := math.Log10(float64(playcount)) / 7.0 * 100.0
		if score > 100 {
			score = 100
		}
		return score
	}
	if rank > 0 {
		score := 100.0 - float64(rank)
		if score < 0 {
			score = 0
		}
		return score
	}
	score := 100.0 - float64(index)
	if score < 0 {
		score = 0
	}
	return score
}
