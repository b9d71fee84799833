package spotify

import "github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"

// Wire shapes of the feature/recommendation service. Lists arrive under a
// content/data envelope.

type wireFeatures struct {
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Tempo            float64 `json:"tempo"`
}

func (w wireFeatures) toDomain() domain.FeatureVector {
	return domain.FeatureVector{
		Energy:           w.Energy,
		Valence:          w.Valence,
		Danceability:     w.Danceability,
		Acousticness:     w.Acousticness,
		Instrumentalness: w.Instrumentalness,
		Tempo:            w.Tempo,
	}
}

type wireTrack struct {
	ID       string       `json:"id"`
	Artist   string       `json:"artist"`
	Title    string       `json:"title"`
	Features wireFeatures `json:"features"`
}

type envelope[T any] struct {
	Content struct {
		Data  []T `json:"data"`
		Total int `json:"total"`
	} `json:"content"`
}
