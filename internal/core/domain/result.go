package domain

// Mode selects which discovery strategy a run uses.
type Mode string

const (
	ModeArtist   Mode = "artist"
	ModeTrack    Mode = "track"
	ModeGenre    Mode = "genre"
	ModeSeeded   Mode = "seeded"
	ModeMood     Mode = "mood"
	ModeActivity Mode = "activity"
)

// ValidMode reports whether m names a known discovery mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeArtist, ModeTrack, ModeGenre, ModeSeeded, ModeMood, ModeActivity:
		return true
	}
	return false
}

// RunResult is what callers of the pipeline receive.
type RunResult struct {
	Success     bool
	TracksAdded int
	Tracks      []MatchedTrack
	Error       string
}
