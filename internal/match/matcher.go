// Package match resolves discovered titles against the local catalog using
// a three-pass fuzzy algorithm: exact, normalized, then partial token
// overlap. The passes trade precision for recall progressively because
// catalog titles are noisy; failing outright would starve the pipeline.
package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Pass identifies which matching tier produced a result.
type Pass int

const (
	PassNone Pass = iota
	PassExact
	PassNormalized
	PassPartial
)

func (p Pass) String() string {
	switch p {
	case PassExact:
		return "exact"
	case PassNormalized:
		return "normalized"
	case PassPartial:
		return "partial"
	}
	return "none"
}

const (
	// minTokenLen drops short words from the partial pass.
	minTokenLen = 3

	// minTokenOverlap is the fraction of query tokens a catalog title must
	// share to satisfy the partial pass.
	minTokenOverlap = 0.5

	// minPartialSimilarity rejects partial candidates whose normalized
	// strings are barely related despite token overlap.
	minPartialSimilarity = 0.3
)

// Matcher implements ports.Matcher over a catalog port.
type Matcher struct {
	catalog ports.Catalog
	log     zerolog.Logger
}

var _ ports.Matcher = (*Matcher)(nil)

// New constructs a Matcher.
func New(catalog ports.Catalog, log zerolog.Logger) *Matcher {
	return &Matcher{
		catalog: catalog,
		log:     log.With().Str("component", "matcher").Logger(),
	}
}

// Match resolves each title against the artist's catalog entries. Titles
// with no match across all three passes are absent from the result map.
func (m *Matcher) Match(ctx context.Context, artist string, titles []string, opts ports.MatchOptions) (map[string][]domain.MatchedTrack, error) {
	rows, err := m.catalog.ArtistTracks(ctx, artist)
	if err != nil {
		return nil, fmt.Errorf("matcher: load artist %q: %w", artist, err)
	}

	rows = filterByRating(rows, opts)
	if len(rows) == 0 {
		return map[string][]domain.MatchedTrack{}, nil
	}

	result := make(map[string][]domain.MatchedTrack, len(titles))
	for _, title := range titles {
		pass, found := matchTitle(rows, title)
		if len(found) == 0 {
			continue
		}

		found = orderByPreference(found)
		if opts.Best && len(found) > 1 {
			found = found[:1]
		}
		if opts.MaxPerTitle > 0 && len(found) > opts.MaxPerTitle {
			found = found[:opts.MaxPerTitle]
		}

		m.log.Debug().
			Str("artist", artist).
			Str("title", title).
			Stringer("pass", pass).
			Int("hits", len(found)).
			Msg("title matched")
		result[title] = found
	}

	return result, nil
}

// matchTitle runs the three passes in order; the first pass yielding a
// non-empty result wins for the title.
func matchTitle(rows []domain.MatchedTrack, title string) (Pass, []domain.MatchedTrack) {
	if hits := exactPass(rows, title); len(hits) > 0 {
		return PassExact, hits
	}
	if hits := normalizedPass(rows, title); len(hits) > 0 {
		return PassNormalized, hits
	}
	if hits := partialPass(rows, title); len(hits) > 0 {
		return PassPartial, hits
	}
	return PassNone, nil
}

func exactPass(rows []domain.MatchedTrack, title string) []domain.MatchedTrack {
	var hits []domain.MatchedTrack
	for _, r := range rows {
		if strings.EqualFold(r.Title, title) {
			hits = append(hits, r)
		}
	}
	return hits
}

func normalizedPass(rows []domain.MatchedTrack, title string) []domain.MatchedTrack {
	want := Normalize(title)
	if want == "" {
		return nil
	}

	var hits []domain.MatchedTrack
	for _, r := range rows {
		if Normalize(r.Title) == want {
			hits = append(hits, r)
		}
	}
	return hits
}

func partialPass(rows []domain.MatchedTrack, title string) []domain.MatchedTrack {
	queryTokens := Tokens(title, minTokenLen)
	if len(queryTokens) == 0 {
		return nil
	}
	normTitle := Normalize(title)

	var hits []domain.MatchedTrack
	for _, r := range rows {
		rowTokens := Tokens(r.Title, minTokenLen)
		if len(rowTokens) == 0 {
			continue
		}
		if tokenOverlap(queryTokens, rowTokens) < minTokenOverlap {
			continue
		}
		if similarity(normTitle, Normalize(r.Title)) < minPartialSimilarity {
			continue
		}
		hits = append(hits, r)
	}
	return hits
}

// tokenOverlap is the fraction of query tokens present in the candidate.
func tokenOverlap(query, candidate []string) float64 {
	set := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		set[t] = struct{}{}
	}

	matched := 0
	for _, t := range query {
		if _, ok := set[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// filterByRating applies the rating floor. Unrated rows (rating 0) survive
// only when explicitly allowed.
func filterByRating(rows []domain.MatchedTrack, opts ports.MatchOptions) []domain.MatchedTrack {
	if opts.MinRating <= 0 {
		return rows
	}

	out := make([]domain.MatchedTrack, 0, len(rows))
	for _, r := range rows {
		if r.Rating == 0 && opts.AllowUnknown {
			out = append(out, r)
			continue
		}
		if r.Rating >= opts.MinRating {
			out = append(out, r)
		}
	}
	return out
}

// orderByPreference sorts duplicate rips: higher bitrate first, then higher
// rating; ties keep the earlier row.
func orderByPreference(rows []domain.MatchedTrack) []domain.MatchedTrack {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Better(rows[j])
	})
	return rows
}
