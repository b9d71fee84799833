package ports

import (
	"context"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// Catalog is the local library backing the matcher.
type Catalog interface {
	// ArtistTracks returns every catalog record filed under the artist,
	// matched case-insensitively. A missing artist yields an empty slice,
	// not an error.
	ArtistTracks(ctx context.Context, artist string) ([]domain.MatchedTrack, error)
}

// MatchOptions tune how the library matcher filters and selects rows.
type MatchOptions struct {
	// MaxPerTitle caps how many records a single title may resolve to.
	// Zero means no cap.
	MaxPerTitle int

	// Best keeps only the single preferred record per title.
	Best bool

	// MinRating drops records rated below the floor.
	MinRating int

	// AllowUnknown admits unrated records despite a MinRating floor.
	AllowUnknown bool
}

// Matcher resolves discovered titles against the local catalog.
type Matcher interface {
	Match(ctx context.Context, artist string, titles []string, opts MatchOptions) (map[string][]domain.MatchedTrack, error)
}
