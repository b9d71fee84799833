package domain

// FeatureVector holds numeric audio-feature targets understood by the
// recommendation service. Zero values mean "no preference" only inside
// presets built through partial construction; aggregated vectors always
// carry every field.
type FeatureVector struct {
	Energy           float64
	Valence          float64
	Danceability     float64
	Acousticness     float64
	Instrumentalness float64
	Tempo            float64
}

// MeanVector returns the per-feature arithmetic mean of vs.
// A single vector is returned as-is; an empty input yields the zero vector.
func MeanVector(vs []FeatureVector) FeatureVector {
	if len(vs) == 0 {
		return FeatureVector{}
	}
	if len(vs) == 1 {
		return vs[0]
	}

	var sum FeatureVector
	for _, v := range vs {
		sum.Energy += v.Energy
		sum.Valence += v.Valence
		sum.Danceability += v.Danceability
		sum.Acousticness += v.Acousticness
		sum.Instrumentalness += v.Instrumentalness
		sum.Tempo += v.Tempo
	}
	n := float64(len(vs))
	return FeatureVector{
		Energy:           sum.Energy / n,
		Valence:          sum.Valence / n,
		Danceability:     sum.Danceability / n,
		Acousticness:     sum.Acousticness / n,
		Instrumentalness: sum.Instrumentalness / n,
		Tempo:            sum.Tempo / n,
	}
}

// profilePresets maps mood/activity names to fixed feature targets.
var profilePresets = map[string]FeatureVector{
	"energetic": {Energy: 0.9, Valence: 0.7, Danceability: 0.7, Acousticness: 0.1, Instrumentalness: 0.1, Tempo: 140},
	"chill":     {Energy: 0.3, Valence: 0.5, Danceability: 0.4, Acousticness: 0.6, Instrumentalness: 0.3, Tempo: 95},
	"focus":     {Energy: 0.4, Valence: 0.4, Danceability: 0.3, Acousticness: 0.5, Instrumentalness: 0.8, Tempo: 110},
	"happy":     {Energy: 0.7, Valence: 0.9, Danceability: 0.7, Acousticness: 0.2, Instrumentalness: 0.1, Tempo: 120},
	"melancholy": {
		Energy: 0.3, Valence: 0.15, Danceability: 0.3, Acousticness: 0.6, Instrumentalness: 0.2, Tempo: 85,
	},
	"workout": {Energy: 0.95, Valence: 0.6, Danceability: 0.8, Acousticness: 0.05, Instrumentalness: 0.2, Tempo: 150},
	"party":   {Energy: 0.85, Valence: 0.8, Danceability: 0.9, Acousticness: 0.1, Instrumentalness: 0.05, Tempo: 125},
	"sleep":   {Energy: 0.1, Valence: 0.3, Danceability: 0.1, Acousticness: 0.9, Instrumentalness: 0.9, Tempo: 65},
}

// ProfilePreset resolves a mood/activity name to its target vector.
// Unknown names report ok=false; callers must not substitute a default.
func ProfilePreset(name string) (FeatureVector, bool) {
	v, ok := profilePresets[name]
	return v, ok
}
