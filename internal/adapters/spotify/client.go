// Package spotify is the client for the feature/recommendation service:
// name-to-identifier resolution, audio-feature vectors, and target-steered
// recommendation lists.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryCount = 3
	defaultRetryWait  = 500 * time.Millisecond
	maxRetryWait      = 8 * time.Second
)

// Client is the feature-service client.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger
}

var _ ports.FeatureProvider = (*Client)(nil)

// Config carries service endpoint and credentials.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// NewClient constructs a client authenticated with client credentials.
// Without credentials the client talks to the service unauthenticated,
// which test servers allow.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	var rc *resty.Client
	if cfg.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		rc = resty.NewWithClient(cc.Client(context.Background()))
	} else {
		rc = resty.New()
	}

	rc.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(defaultTimeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(maxRetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		rc:  rc,
		log: log.With().Str("component", "spotify").Logger(),
	}
}

// ResolveTrack maps artist+title to the service's track identifier.
func (c *Client) ResolveTrack(ctx context.Context, artist, title string) (string, error) {
	var body envelope[wireTrack]
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"artist": artist,
			"title":  title,
			"limit":  "1",
		}).
		SetResult(&body).
		Get("/tracks/search")
	if err != nil {
		return "", fmt.Errorf("spotify: search: %w", err)
	}
	if err := checkStatus(resp, "search"); err != nil {
		return "", err
	}

	if len(body.Content.Data) == 0 || body.Content.Data[0].ID == "" {
		c.log.Debug().Str("artist", artist).Str("title", title).Msg("track did not resolve")
		return "", ports.NotFoundError{Entity: artist + " - " + title}
	}
	return body.Content.Data[0].ID, nil
}

// AudioFeatures fetches the feature vector of a resolved track.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (domain.FeatureVector, error) {
	var body wireFeatures
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/audio-features/" + trackID)
	if err != nil {
		return domain.FeatureVector{}, fmt.Errorf("spotify: audio features: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.FeatureVector{}, ports.NotFoundError{Entity: trackID}
	}
	if err := checkStatus(resp, "audio features"); err != nil {
		return domain.FeatureVector{}, err
	}

	return body.toDomain(), nil
}

// Recommend requests a ranked list steered by seed IDs and feature targets.
func (c *Client) Recommend(ctx context.Context, seedIDs []string, target domain.FeatureVector, limit int) ([]ports.Recommendation, error) {
	if len(seedIDs) > 5 {
		seedIDs = seedIDs[:5]
	}

	params := map[string]string{
		"limit":                   strconv.Itoa(limit),
		"target_energy":           formatFeature(target.Energy),
		"target_valence":          formatFeature(target.Valence),
		"target_danceability":     formatFeature(target.Danceability),
		"target_acousticness":     formatFeature(target.Acousticness),
		"target_instrumentalness": formatFeature(target.Instrumentalness),
		"target_tempo":            formatFeature(target.Tempo),
	}
	if len(seedIDs) > 0 {
		params["seed_tracks"] = strings.Join(seedIDs, ",")
	}

	var body envelope[wireTrack]
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get("/recommendations")
	if err != nil {
		return nil, fmt.Errorf("spotify: recommend: %w", err)
	}
	if err := checkStatus(resp, "recommend"); err != nil {
		return nil, err
	}

	out := make([]ports.Recommendation, 0, len(body.Content.Data))
	for _, t := range body.Content.Data {
		if t.Artist == "" || t.Title == "" {
			continue
		}
		out = append(out, ports.Recommendation{
			Artist:   t.Artist,
			Title:    t.Title,
			Features: t.Features.toDomain(),
		})
	}
	return out, nil
}

func checkStatus(resp *resty.Response, op string) error {
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("spotify: %s: %w", op, ports.ErrThrottled)
	}
	return fmt.Errorf("spotify: %s: status %d", op, resp.StatusCode())
}

func formatFeature(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
