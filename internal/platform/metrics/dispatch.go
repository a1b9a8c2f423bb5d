package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch counts classification job publishes
type Dispatch struct {
	Publishes *prometheus.CounterVec
	Delay     prometheus.Histogram
}

func newDispatch(reg prometheus.Registerer) (*Dispatch, error) {
	d := &Dispatch{
		Publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicegeek_dispatch_publishes_total",
			Help: "Inference jobs published to the queue by kind, transport and outcome.",
		}, []string{"kind", "transport", "outcome"}),
		Delay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "servicegeek_dispatch_delay_seconds",
			Help:    "Delay attached to published inference jobs.",
			Buckets: []float64{0, 60, 180, 900, 3600, 4 * 3600, 8 * 3600, 12 * 3600},
		}),
	}
	for _, c := range []prometheus.Collector{d.Publishes, d.Delay} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Published records one publish attempt
func (d *Dispatch) Published(kind, transport string, ok bool, delay time.Duration) {
	if d == nil {
		return
	}
	d.Publishes.WithLabelValues(kind, transport, outcome(ok)).Inc()
	if ok {
		d.Delay.Observe(delay.Seconds())
	}
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
