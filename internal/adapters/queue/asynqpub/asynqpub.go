// Package asynqpub publishes classification jobs through asynq on redis
package asynqpub

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/services/dispatch/domain"
)

// TaskType is the asynq task name the classifier worker subscribes to
const TaskType = "inference:classify"

// Options configures the redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Queue    string
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Publisher enqueues one asynq task per job
type Publisher struct {
	c     enqueuer
	queue string
}

// New connects an asynq client
func New(o Options) (*Publisher, error) {
	if o.Addr == "" {
		return nil, perr.InvalidArgf("asynqpub: missing redis addr")
	}
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: o.Addr, Password: o.Password, DB: o.DB})
	return newWith(c, o.Queue), nil
}

func newWith(c enqueuer, queue string) *Publisher {
	if queue == "" {
		queue = "default"
	}
	return &Publisher{c: c, queue: queue}
}

// Transport names the transport in logs and metrics
func (p *Publisher) Transport() string { return "asynq" }

// Publish enqueues the job, carrying the delay as ProcessIn
func (p *Publisher) Publish(ctx context.Context, job domain.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "asynqpub: encode job")
	}
	opts := []asynq.Option{asynq.Queue(p.queue), asynq.MaxRetry(0)}
	if job.Delay > 0 {
		opts = append(opts, asynq.ProcessIn(job.Delay))
	}
	if _, err := p.c.EnqueueContext(ctx, asynq.NewTask(TaskType, payload), opts...); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "asynqpub: enqueue inference %d", job.InferenceID)
	}
	return nil
}

// Close releases the redis connection
func (p *Publisher) Close() error { return p.c.Close() }
