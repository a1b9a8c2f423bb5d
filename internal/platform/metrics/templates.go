package metrics

import "github.com/prometheus/client_golang/prometheus"

// Templates counts template applications
type Templates struct {
	Applied  *prometheus.CounterVec
	Inserted prometheus.Counter
}

func newTemplates(reg prometheus.Registerer) (*Templates, error) {
	t := &Templates{
		Applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicegeek_templates_applied_total",
			Help: "Template applications by outcome or failure reason.",
		}, []string{"outcome"}),
		Inserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servicegeek_templates_detections_inserted_total",
			Help: "Detection rows inserted by template application.",
		}),
	}
	for _, c := range []prometheus.Collector{t.Applied, t.Inserted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Apply records one application; outcome is "ok" or the failure reason
func (t *Templates) Apply(outcome string, inserted int) {
	if t == nil {
		return
	}
	t.Applied.WithLabelValues(outcome).Inc()
	if inserted > 0 {
		t.Inserted.Add(float64(inserted))
	}
}
