// Package storage signs object keys against a storage REST API
//
// batch:  POST {base}/storage/v1/object/sign/{bucket}        {"expiresIn": s, "paths": [...]}
// single: POST {base}/storage/v1/object/sign/{bucket}/{key}  {"expiresIn": s}
package storage

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"servicegeek/internal/adapters/rest"
	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/services/media/domain"
)

const signPrefix = "/storage/v1/object/sign/"

// Options configures the signer
type Options struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	MaxRetries int

	// Transport overrides the http transport (tests)
	Transport http.RoundTripper
}

// Client signs keys with the service role key
type Client struct {
	c    *rest.Client
	base string
	key  string
}

// New builds a signer
func New(o Options) *Client {
	rc := rest.NewClient(rest.Options{
		Name:       "storage",
		BaseURL:    o.BaseURL,
		Token:      o.ServiceKey,
		Timeout:    o.Timeout,
		MaxRetries: o.MaxRetries,
		Transport:  o.Transport,
	})
	return &Client{c: rc, base: rc.BaseURL(), key: o.ServiceKey}
}

type signManyReq struct {
	ExpiresIn int      `json:"expiresIn"`
	Paths     []string `json:"paths"`
}

type signManyItem struct {
	Path      string  `json:"path"`
	SignedURL string  `json:"signedURL"`
	Error     *string `json:"error"`
}

type signOneReq struct {
	ExpiresIn int `json:"expiresIn"`
}

type signOneResp struct {
	SignedURL string `json:"signedURL"`
}

// SignMany signs keys in one call
func (c *Client) SignMany(ctx context.Context, bucket string, keys []string, expiry time.Duration) ([]domain.Signed, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var items []signManyItem
	body := signManyReq{ExpiresIn: seconds(expiry), Paths: keys}
	if err := c.c.PostJSON(ctx, signPrefix+url.PathEscape(bucket), body, c.apiKey(), &items); err != nil {
		return nil, err
	}
	out := make([]domain.Signed, 0, len(items))
	for _, it := range items {
		s := domain.Signed{Key: it.Path}
		switch {
		case it.Error != nil && *it.Error != "":
			s.Err = *it.Error
		case it.SignedURL == "":
			s.Err = "empty signed url"
		default:
			s.URL = c.absolute(it.SignedURL)
		}
		out = append(out, s)
	}
	return out, nil
}

// Sign signs one key
func (c *Client) Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", perr.InvalidArgf("storage: empty key")
	}
	var resp signOneResp
	path := signPrefix + url.PathEscape(bucket) + "/" + escapeKey(key)
	if err := c.c.PostJSON(ctx, path, signOneReq{ExpiresIn: seconds(expiry)}, c.apiKey(), &resp); err != nil {
		return "", err
	}
	if resp.SignedURL == "" {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "storage: empty signed url for %q", key)
	}
	return c.absolute(resp.SignedURL), nil
}

func (c *Client) apiKey() http.Header {
	h := http.Header{}
	if c.key != "" {
		h.Set("apikey", c.key)
	}
	return h
}

// absolute turns the relative url storage returns into one a browser can fetch
func (c *Client) absolute(signed string) string {
	if strings.HasPrefix(signed, "http://") || strings.HasPrefix(signed, "https://") {
		return signed
	}
	if !strings.HasPrefix(signed, "/") {
		signed = "/" + signed
	}
	return c.base + "/storage/v1" + signed
}

// escapeKey escapes each segment and keeps the slashes
func escapeKey(key string) string {
	parts := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}
