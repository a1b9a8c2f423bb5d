// Package service schedules classification jobs into dispatch windows
package service

import (
	"context"
	"errors"
	"time"

	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/metrics"
	"servicegeek/internal/platform/store"
	"servicegeek/internal/services/dispatch/domain"
)

// AuditTable receives one row per publish attempt when clickhouse is enabled
const AuditTable = "inference_dispatches"

// Service is the public service port
type Service interface{ domain.DispatchPort }

// Options tunes scheduling
type Options struct {
	Windows  []int
	Location *time.Location

	// Immediate computes and logs the slot but publishes without a delay
	Immediate bool

	RequeueDelay time.Duration

	// Timeout bounds each publish on top of the caller context
	Timeout time.Duration

	// Audit is optional
	Audit   store.Clickhouse
	Metrics *metrics.Dispatch

	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// Svc implements the dispatch port
type Svc struct {
	pub domain.Publisher
	opt Options
	log logger.Logger
}

// New constructs the service
func New(pub domain.Publisher, opt Options) *Svc {
	if pub == nil {
		panic("dispatch.Service requires a non nil Publisher")
	}
	if len(opt.Windows) == 0 {
		opt.Windows = domain.DefaultWindows
	}
	opt.Windows = normalizeWindows(opt.Windows)
	if opt.Location == nil {
		opt.Location = time.UTC
	}
	if opt.RequeueDelay <= 0 {
		opt.RequeueDelay = 3 * time.Minute
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{pub: pub, opt: opt, log: *logger.Named("dispatch")}
}

// NextEligibleSlot returns the next dispatch window after now
func (s *Svc) NextEligibleSlot(now time.Time) time.Time {
	return NextSlot(now, s.opt.Windows, s.opt.Location)
}

// Enqueue publishes the job delayed until the next window
func (s *Svc) Enqueue(ctx context.Context, inferenceID int64) error {
	now := s.opt.Now()
	slot := s.NextEligibleSlot(now)
	delay := slot.Sub(now)
	if s.opt.Immediate {
		delay = 0
	}

	s.log.Info().
		Int64("inference_id", inferenceID).
		Time("slot", slot).
		Dur("delay", delay).
		Bool("immediate", s.opt.Immediate).
		Msg("dispatch scheduled")

	return s.publish(ctx, domain.Job{InferenceID: inferenceID, Kind: domain.KindEnqueue, Delay: delay}, slot)
}

// Requeue republishes with the flat retry delay
func (s *Svc) Requeue(ctx context.Context, inferenceID int64) error {
	now := s.opt.Now()
	job := domain.Job{InferenceID: inferenceID, Kind: domain.KindRequeue, Delay: s.opt.RequeueDelay}
	return s.publish(ctx, job, now.Add(job.Delay))
}

func (s *Svc) publish(ctx context.Context, job domain.Job, slot time.Time) error {
	pctx, cancel := context.WithTimeout(ctx, s.opt.Timeout)
	defer cancel()

	err := s.pub.Publish(pctx, job)
	ok := err == nil
	s.opt.Metrics.Published(string(job.Kind), s.pub.Transport(), ok, job.Delay)
	s.audit(ctx, domain.Dispatch{
		At:          s.opt.Now(),
		InferenceID: job.InferenceID,
		Kind:        job.Kind,
		Transport:   s.pub.Transport(),
		Slot:        slot,
		Delay:       job.Delay,
		OK:          ok,
		Status:      statusOf(err),
	})
	if ok {
		return nil
	}

	// the broker owns redelivery; only local construction faults reach the caller
	if perr.IsCode(err, perr.ErrorCodeUnavailable) {
		s.log.Error().Err(err).
			Int64("inference_id", job.InferenceID).
			Str("kind", string(job.Kind)).
			Str("transport", s.pub.Transport()).
			Msg("dispatch publish failed")
		return nil
	}
	return err
}

func (s *Svc) audit(ctx context.Context, d domain.Dispatch) {
	if s.opt.Audit == nil {
		return
	}
	row := []any{
		d.At.UTC(),
		d.InferenceID,
		string(d.Kind),
		d.Transport,
		d.Slot.UTC(),
		d.Delay.Milliseconds(),
		boolToUInt8(d.OK),
		uint16(d.Status),
	}
	if err := s.opt.Audit.Insert(ctx, AuditTable, [][]any{row}); err != nil {
		s.log.Warn().Err(err).Int64("inference_id", d.InferenceID).Msg("dispatch audit insert failed")
	}
}

// statusOf digs the remote status out of transports that carry one
func statusOf(err error) int {
	var hs interface{ HTTPStatus() int }
	if errors.As(err, &hs) {
		return hs.HTTPStatus()
	}
	return 0
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
