// Package lastfm is the client for the graph/tag similarity service. It
// normalizes wire responses into the plain provider records and maps the
// service's numeric error codes onto the port sentinels.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client is an HTTP client for the similarity service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        zerolog.Logger

	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.SimilarityProvider = (*Client)(nil)

// Option tweaks client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry overrides the throttle retry budget and base backoff.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// NewClient constructs a similarity-service client.
func NewClient(baseURL, apiKey string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		log:         log.With().Str("component", "lastfm").Logger(),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SimilarArtists fetches the artist neighborhood of the named artist.
func (c *Client) SimilarArtists(ctx context.Context, artist string, limit int) ([]ports.SimilarArtist, error) {
	var body similarArtistsResponse
	params := url.Values{"artist": {artist}}
	if err := c.call(ctx, "artist.getsimilar", params, limit, &body); err != nil {
		return nil, err
	}

	out := make([]ports.SimilarArtist, 0, len(body.SimilarArtists.Artist))
	for _, a := range body.SimilarArtists.Artist {
		if a.Name == "" {
			continue
		}
		out = append(out, ports.SimilarArtist{Name: a.Name, Match: parseFloat(a.Match)})
	}
	return out, nil
}

// SimilarTracks fetches tracks similar to the named track.
func (c *Client) SimilarTracks(ctx context.Context, artist, title string, limit int) ([]ports.SimilarTrack, error) {
	var body similarTracksResponse
	params := url.Values{"artist": {artist}, "track": {title}}
	if err := c.call(ctx, "track.getsimilar", params, limit, &body); err != nil {
		return nil, err
	}

	out := make([]ports.SimilarTrack, 0, len(body.SimilarTracks.Track))
	for _, t := range body.SimilarTracks.Track {
		if t.Name == "" || t.Artist.Name == "" {
			continue
		}
		out = append(out, ports.SimilarTrack{
			Artist:    t.Artist.Name,
			Title:     t.Name,
			Match:     parseFloat(t.Match),
			Playcount: parseInt(t.Playcount),
		})
	}
	return out, nil
}

// TopTracks fetches the most popular tracks of an artist.
func (c *Client) TopTracks(ctx context.Context, artist string, limit int) ([]ports.TopTrack, error) {
	var body topTracksResponse
	params := url.Values{"artist": {artist}}
	if err := c.call(ctx, "artist.gettoptracks", params, limit, &body); err != nil {
		return nil, err
	}

	out := make([]ports.TopTrack, 0, len(body.TopTracks.Track))
	for _, t := range body.TopTracks.Track {
		if t.Name == "" {
			continue
		}
		out = append(out, ports.TopTrack{
			Title:     t.Name,
			Playcount: parseInt(t.Playcount),
			Rank:      parseInt(t.Attr.Rank),
		})
	}
	return out, nil
}

// ArtistTags fetches the tag list of an artist.
func (c *Client) ArtistTags(ctx context.Context, artist string, limit int) ([]ports.Tag, error) {
	var body topTagsResponse
	params := url.Values{"artist": {artist}}
	if err := c.call(ctx, "artist.gettoptags", params, limit, &body); err != nil {
		return nil, err
	}

	out := make([]ports.Tag, 0, len(body.TopTags.Tag))
	for _, tag := range body.TopTags.Tag {
		if tag.Name == "" {
			continue
		}
		out = append(out, ports.Tag{Name: tag.Name, Count: tag.Count})
	}
	return out, nil
}

// TagTopArtists fetches the leading artists filed under a tag.
func (c *Client) TagTopArtists(ctx context.Context, tag string, limit int) ([]ports.RankedArtist, error) {
	var body topArtistsResponse
	params := url.Values{"tag": {tag}}
	if err := c.call(ctx, "tag.gettopartists", params, limit, &body); err != nil {
		return nil, err
	}

	out := make([]ports.RankedArtist, 0, len(body.TopArtists.Artist))
	for _, a := range body.TopArtists.Artist {
		if a.Name == "" {
			continue
		}
		out = append(out, ports.RankedArtist{Name: a.Name, Rank: parseInt(a.Attr.Rank)})
	}
	return out, nil
}

// call issues one GET with retry on throttling and decodes into out.
func (c *Client) call(ctx context.Context, method string, params url.Values, limit int, out any) error {
	params.Set("method", method)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("lastfm: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("lastfm: decode %s: %w", method, err)
	}

	// Error payloads arrive with status 200, discriminated by body shape.
	var svcErr errorBody
	if err := json.Unmarshal(raw, &svcErr); err == nil && svcErr.Error != 0 {
		return c.mapServiceError(method, svcErr)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("lastfm: decode %s: %w", method, err)
	}
	return nil
}

func (c *Client) mapServiceError(method string, body errorBody) error {
	switch body.Error {
	case codeNotFound:
		c.log.Debug().Str("method", method).Msg("entity not found")
		return ports.NotFoundError{Entity: body.Message}
	case codeThrottled:
		return fmt.Errorf("lastfm: %s: %w", method, ports.ErrThrottled)
	default:
		return fmt.Errorf("lastfm: %s: service error %d: %s", method, body.Error, body.Message)
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
