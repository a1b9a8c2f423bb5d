// Package httppub publishes classification jobs to an HTTP broker
package httppub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"servicegeek/internal/adapters/rest"
	"servicegeek/internal/services/dispatch/domain"
)

// DelayHeader carries the broker side delay
const DelayHeader = "X-Delay"

// Options configures the publisher
type Options struct {
	BaseURL string
	Path    string
	Token   string
	Timeout time.Duration

	// Transport overrides the http transport (tests)
	Transport http.RoundTripper
}

// Publisher posts {"inferenceId": id} with bearer auth
type Publisher struct {
	c    *rest.Client
	path string
}

// New builds a publisher; a blank base URL surfaces on the first Publish
func New(o Options) *Publisher {
	if o.Path == "" {
		o.Path = "/"
	}
	return &Publisher{
		c: rest.NewClient(rest.Options{
			Name:      "queue",
			BaseURL:   o.BaseURL,
			Token:     o.Token,
			Timeout:   o.Timeout,
			Transport: o.Transport,
		}),
		path: o.Path,
	}
}

// Transport names the transport in logs and metrics
func (p *Publisher) Transport() string { return "http" }

// Publish sends one job; redelivery is the broker's business so nothing is retried here
func (p *Publisher) Publish(ctx context.Context, job domain.Job) error {
	hdr := http.Header{}
	if job.Delay > 0 {
		hdr.Set(DelayHeader, FormatDelay(job.Delay))
	}
	return p.c.PostJSON(ctx, p.path, job, hdr, nil)
}

// FormatDelay renders whole minutes as "3m" and anything else as rounded up seconds "95s"
func FormatDelay(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	secs := (d + time.Second - 1) / time.Second
	return fmt.Sprintf("%ds", secs)
}
