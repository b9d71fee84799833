package domain

import "strings"

// SeedKind classifies what part of the listening context a seed came from.
type SeedKind string

const (
	SeedArtist SeedKind = "artist"
	SeedTrack  SeedKind = "track"
	SeedGenre  SeedKind = "genre"
)

// Seed is a single starting point for discovery, derived from the current
// selection or the playing track. Immutable once collected.
type Seed struct {
	Kind   SeedKind
	Artist string
	Title  string
	Genre  string
}

// artistDelimiters are the separators hosts use to join multiple artist
// names into one field.
var artistDelimiters = []string{";", " / ", " feat. ", " feat ", " ft. ", " & "}

// SplitArtists breaks a joined artist field into individual names.
func SplitArtists(field string) []string {
	parts := []string{field}
	for _, delim := range artistDelimiters {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, delim)...)
		}
		parts = next
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// DedupeSeeds removes seeds whose normalized artist name was already seen,
// keeping first occurrences in order.
func DedupeSeeds(seeds []Seed) []Seed {
	seen := make(map[string]bool, len(seeds))
	out := make([]Seed, 0, len(seeds))
	for _, s := range seeds {
		key := string(s.Kind) + "|" + strings.ToLower(strings.TrimSpace(s.Artist)) + "|" + strings.ToLower(strings.TrimSpace(s.Title)) + "|" + strings.ToLower(s.Genre)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
