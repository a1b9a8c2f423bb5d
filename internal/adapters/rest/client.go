// Package rest provides a small JSON REST client with bearer auth and bounded retries
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/platform/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUA        = "servicegeek"
	defaultRetryBase = 250 * time.Millisecond
	maxBackoff       = 5 * time.Second
)

// Options configures the Client
type Options struct {
	// Name tags log lines, e.g. "queue" or "storage"
	Name      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is sent as a bearer token when set
	Token string

	// MaxRetries bounds retries for transport errors and 429/502/503/504
	// zero means a single attempt
	MaxRetries int
	RetryBase  time.Duration

	// Transport overrides the http transport (tests)
	Transport http.RoundTripper
}

// Client posts JSON documents to one base URL
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.Name == "" {
		o.Name = "rest"
	}
	hc := &http.Client{Timeout: o.Timeout}
	if o.Transport != nil {
		hc.Transport = o.Transport
	}
	return &Client{
		http:  hc,
		opts:  o,
		log:   *logger.Named(o.Name),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// PostJSON encodes body, posts it to path and decodes a 2xx reply into out when out is non nil
// request construction problems come back as InvalidArgument, everything the remote did as Unavailable
func (c *Client) PostJSON(ctx context.Context, path string, body any, hdr http.Header, out any) error {
	if c.opts.BaseURL == "" {
		return perr.InvalidArgf("%s: missing base url", c.opts.Name)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "%s: encode request", c.opts.Name)
	}
	url := c.opts.BaseURL + path

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "%s: %s", c.opts.Name, path)
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "%s: new request", c.opts.Name)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.Token)
		}
		for k, vs := range hdr {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: post %s", c.opts.Name, path)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			defer func() { _ = drainAndClose(resp.Body) }()
			if out == nil {
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: decode reply", c.opts.Name)
			}
			return nil
		case transient(resp.StatusCode) && c.shouldRetry(attempts):
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Msg("transient status retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return &StatusError{
				Status: resp.StatusCode,
				Body:   string(tail),
				Err:    perr.Newf(perr.ErrorCodeUnavailable, "%s: unexpected status %d", c.opts.Name, resp.StatusCode),
			}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
