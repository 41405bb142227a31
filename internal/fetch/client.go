// Package fetch downloads raw upstream payloads (FPL, ESPN standings) with
// retries, short-lived caching and optional snapshots on disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/cache"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/observability"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
)

const (
	DefaultBaseURL      = "https://fantasy.premierleague.com/api"
	DefaultStandingsURL = "https://site.api.espn.com/apis/v2/sports/soccer/eng.1/standings"
)

type Client struct {
	HTTP         *http.Client
	BaseURL      string
	StandingsURL string
	UserAgent    string

	// Attempts is the total number of tries per request.
	Attempts   uint
	RetryDelay time.Duration

	// Cache, when set, short-circuits requests for CacheTTL.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Store, when set, receives a copy of every fetched body.
	Store       *store.JSONStore
	PrettyWrite bool
}

func NewClient(c cache.Cache) *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 20 * time.Second},
		BaseURL:      DefaultBaseURL,
		StandingsURL: DefaultStandingsURL,
		UserAgent:    "fpl-fixture-ticker/1.0",
		Attempts:     3,
		RetryDelay:   250 * time.Millisecond,
		Cache:        c,
		CacheTTL:     5 * time.Minute,
		PrettyWrite:  true,
	}
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %d body=%s", e.URL, e.Code, e.Body)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// FetchRaw downloads url, keyed by relPath in the cache and snapshot store.
// endpoint labels metrics. force skips the cache read.
func (c *Client) FetchRaw(ctx context.Context, endpoint string, url string, relPath string, force bool) ([]byte, error) {
	if !force && c.Cache != nil {
		b, ok, err := c.Cache.Get(ctx, relPath)
		if err != nil {
			log.Warn().Err(err).Str("key", relPath).Msg("cache read failed, fetching upstream")
		} else if ok {
			observability.UpstreamRequests.WithLabelValues(endpoint, "cache_hit").Inc()
			return b, nil
		}
	}

	start := time.Now()
	var body []byte
	err := retry.Do(
		func() error {
			b, err := c.get(ctx, url)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(max(c.Attempts, 1)),
		retry.Delay(c.RetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Temporary()
			}
			return ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Str("endpoint", endpoint).Uint("attempt", n+1).Msg("retrying upstream request")
		}),
	)
	observability.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, errors.Wrapf(err, "fetch %s", endpoint)
	}
	observability.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, relPath, body, c.CacheTTL); err != nil {
			log.Warn().Err(err).Str("key", relPath).Msg("cache write failed")
		}
	}
	if c.Store != nil {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Body: string(snippet)}
	}
	return body, nil
}
