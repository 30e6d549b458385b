// Package search provides a web search API client for profile enrichment
package search

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"io"
	"net/http"
	"time"

	perr "mingle/internal/platform/errors"
	"mingle/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.tavily.com"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "mingle-api"
	defaultMaxRetry  = 2
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// APIKey authorizes requests. Empty means the adapter is disabled and
	// callers should degrade instead of calling out
	APIKey string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal search API client with bounded retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("search"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool { return c.opts.APIKey != "" }

// Query is one search request
type Query struct {
	Text          string
	MaxResults    int
	IncludeAnswer bool
	// Domains restricts results to the given hosts when non-empty
	Domains []string
}

// Result is one search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Response is the parsed search reply
type Response struct {
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

// wire shapes for the search API
type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeAnswer  bool     `json:"include_answer,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

// Search issues a query with retries and maps failures to project errors
func (c *Client) Search(ctx context.Context, q Query) (Response, error) {
	if !c.Enabled() {
		return Response{}, perr.Configf("search api key not configured")
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:         c.opts.APIKey,
		Query:          q.Text,
		MaxResults:     q.MaxResults,
		IncludeAnswer:  q.IncludeAnswer,
		IncludeDomains: q.Domains,
	})
	if err != nil {
		return Response{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "search marshal request failed")
	}

	url := c.opts.BaseURL + "/search"
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return Response{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "search new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return Response{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "search do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("search transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("search http response")

		switch resp.StatusCode {
		case http.StatusOK:
			var out Response
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				_ = resp.Body.Close()
				return Response{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "search decode failed")
			}
			_ = resp.Body.Close()
			return out, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return Response{}, perr.Configf("search api key rejected")
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return Response{}, perr.Unavailablef("search upstream unavailable, status %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).
				Msg("search transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			// body tail goes to the log and the wrapped cause only
			// the wire message carries just the status
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			c.log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("search unexpected status")
			return Response{}, perr.Wrapf(stderrs.New(string(body)), perr.ErrorCodeUnknown,
				"search unexpected status %d", resp.StatusCode)
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(10 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
