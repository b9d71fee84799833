package ports

import (
	"context"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// SimilarArtist is one entry from the graph service's artist neighborhood.
type SimilarArtist struct {
	Name  string
	Match float64
}

// SimilarTrack is one entry from the graph service's track neighborhood.
type SimilarTrack struct {
	Artist    string
	Title     string
	Match     float64
	Playcount int
}

// TopTrack is a popular track of an artist with its popularity signals.
type TopTrack struct {
	Title     string
	Playcount int
	Rank      int
}

// Tag is a genre/tag label with the weight the service assigned it.
type Tag struct {
	Name  string
	Count int
}

// RankedArtist is an artist listed under a tag, in service rank order.
type RankedArtist struct {
	Name string
	Rank int
}

// SimilarityProvider is the graph/tag similarity service keyed by artist,
// track and tag names. Implementations normalize wire responses into the
// plain records above. Not-found conditions satisfy errors.Is(err, ErrNotFound).
type SimilarityProvider interface {
	SimilarArtists(ctx context.Context, artist string, limit int) ([]SimilarArtist, error)
	SimilarTracks(ctx context.Context, artist, title string, limit int) ([]SimilarTrack, error)
	TopTracks(ctx context.Context, artist string, limit int) ([]TopTrack, error)
	ArtistTags(ctx context.Context, artist string, limit int) ([]Tag, error)
	TagTopArtists(ctx context.Context, tag string, limit int) ([]RankedArtist, error)
}

// Recommendation is one item from the feature service's ranked list.
type Recommendation struct {
	Artist   string
	Title    string
	Features domain.FeatureVector
}

// FeatureProvider is the feature/recommendation service keyed by track
// identifiers and numeric audio-feature targets.
type FeatureProvider interface {
	// ResolveTrack maps artist+title to the service's track identifier.
	ResolveTrack(ctx context.Context, artist, title string) (string, error)

	// AudioFeatures fetches the feature vector of a resolved track.
	AudioFeatures(ctx context.Context, trackID string) (domain.FeatureVector, error)

	// Recommend requests a ranked list steered by up to five seed IDs and
	// the target vector. Either seeds or target may carry the whole signal.
	Recommend(ctx context.Context, seedIDs []string, target domain.FeatureVector, limit int) ([]Recommendation, error)
}
