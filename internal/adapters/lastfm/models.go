package lastfm

// Wire shapes of the similarity/tag service. Numeric attributes arrive as
// strings and are parsed during mapping.

type errorBody struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Service error codes.
const (
	codeNotFound  = 6
	codeThrottled = 29
)

type attr struct {
	Rank string `json:"rank"`
}

type wireArtist struct {
	Name  string `json:"name"`
	Match string `json:"match"`
	Attr  attr   `json:"@attr"`
}

type wireTrack struct {
	Name      string     `json:"name"`
	Match     string     `json:"match"`
	Playcount string     `json:"playcount"`
	Artist    wireArtist `json:"artist"`
	Attr      attr       `json:"@attr"`
}

type wireTag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type similarArtistsResponse struct {
	SimilarArtists struct {
		Artist []wireArtist `json:"artist"`
	} `json:"similarartists"`
}

type similarTracksResponse struct {
	SimilarTracks struct {
		Track []wireTrack `json:"track"`
	} `json:"similartracks"`
}

type topTracksResponse struct {
	TopTracks struct {
		Track []wireTrack `json:"track"`
	} `json:"toptracks"`
}

type topTagsResponse struct {
	TopTags struct {
		Tag []wireTag `json:"tag"`
	} `json:"toptags"`
}

type topArtistsResponse struct {
	TopArtists struct {
		Artist []wireArtist `json:"artist"`
	} `json:"topartists"`
}
