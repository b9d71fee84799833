package domain

import (
	"fmt"
	"strings"
)

// Track is a host-player track as reported by the selection or playback
// context. The artist field may join several names with a delimiter.
type Track struct {
	Artist string
	Title  string
	Album  string
	Genre  string
}

// MatchedTrack is a local catalog record resolved by the library matcher.
// The catalog owns the record; the engine holds it for one run only.
type MatchedTrack struct {
	ID      int64
	Title   string
	Artist  string
	Album   string
	Path    string
	Rating  int
	Bitrate int
}

// DedupKey derives the canonical identity used to collapse duplicates:
// catalog ID when present, else path, else a title|album|artist composite.
func (t MatchedTrack) DedupKey() string {
	if t.ID > 0 {
		return fmt.Sprintf("id:%d", t.ID)
	}
	if t.Path != "" {
		return "path:" + t.Path
	}
	return strings.ToLower(t.Title) + "|" + strings.ToLower(t.Album) + "|" + strings.ToLower(t.Artist)
}

// Better reports whether t should replace other when both carry the same
// DedupKey: higher bitrate wins, then higher rating, ties keep other.
func (t MatchedTrack) Better(other MatchedTrack) bool {
	if t.Bitrate != other.Bitrate {
		return t.Bitrate > other.Bitrate
	}
	return t.Rating > other.Rating
}
