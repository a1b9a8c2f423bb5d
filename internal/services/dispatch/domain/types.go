// Package domain holds the classification job dispatch contracts
package domain

import (
	"context"
	"time"
)

// Kind tells a first publish from a retry
type Kind string

const (
	// KindEnqueue is the first publish aligned to a dispatch window
	KindEnqueue Kind = "enqueue"
	// KindRequeue is a retry with a flat delay
	KindRequeue Kind = "requeue"
)

// DefaultWindows are the wall clock hours at which jobs become eligible
var DefaultWindows = []int{0, 5, 12, 16, 21}

// Job is one classification request for the worker
type Job struct {
	InferenceID int64 `json:"inferenceId"`

	Kind  Kind          `json:"-"`
	Delay time.Duration `json:"-"`
}

// Publisher hands a job to the broker
// a non success broker reply comes back as perr Unavailable
type Publisher interface {
	Publish(ctx context.Context, job Job) error
	Transport() string
}

// DispatchPort is what other modules use to get inferences classified
type DispatchPort interface {
	NextEligibleSlot(now time.Time) time.Time
	Enqueue(ctx context.Context, inferenceID int64) error
	Requeue(ctx context.Context, inferenceID int64) error
}

// Dispatch is one audited publish attempt
type Dispatch struct {
	At          time.Time
	InferenceID int64
	Kind        Kind
	Transport   string
	Slot        time.Time
	Delay       time.Duration
	OK          bool

	// Status is the broker http status when the transport reports one
	Status int
}
