package lastfm

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

// doRequestWithRetry retries throttled and 5xx responses with exponential
// backoff, honoring a Retry-After hint when the service sends one. The
// request carries no body, so it can be reissued as-is.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	maxRetries := c.maxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	baseBackoff := c.baseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBackoff
	}

	ctx := req.Context()
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("lastfm: request canceled: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		retryAfter, retry := shouldRetry(resp, err)
		if !retry {
			if err != nil {
				return nil, fmt.Errorf("lastfm: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return nil, fmt.Errorf("lastfm: status %d", resp.StatusCode)
			}
			return resp, nil
		}

		if resp != nil {
			_ = resp.Body.Close()
			c.log.Warn().Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("retrying throttled request")
		} else {
			c.log.Warn().Int("attempt", attempt+1).Err(err).Msg("retrying failed request")
		}

		if attempt == maxRetries-1 {
			break
		}

		backoff := baseBackoff * time.Duration(1<<attempt)
		if retryAfter > 0 {
			backoff = retryAfter
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("lastfm: request canceled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("lastfm: retry budget exhausted: %w", ports.ErrThrottled)
}

func shouldRetry(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return parseRetryAfter(resp), true
	}
	return 0, false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(retryAfter); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}
	return 0
}
