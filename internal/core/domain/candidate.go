package domain

// CandidateTrack is a single title produced by a discovery strategy,
// not yet verified to exist in the local catalog.
type CandidateTrack struct {
	Title string

	// Match is a 0..1 confidence carried over from similarity services,
	// zero when the service supplied none.
	Match float64

	// Playcount and Rank feed the ranking stage.
	Playcount int
	Rank      int
}

// Candidate groups the discovered tracks of one artist. A Candidate is owned
// by the run that produced it and is never cached across runs.
type Candidate struct {
	Artist string
	Tracks []CandidateTrack
}

// TrackCount returns the total number of candidate tracks across candidates.
func TrackCount(candidates []Candidate) int {
	n := 0
	for _, c := range candidates {
		n += len(c.Tracks)
	}
	return n
}
