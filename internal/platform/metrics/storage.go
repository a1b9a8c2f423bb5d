package metrics

import "github.com/prometheus/client_golang/prometheus"

// Storage counts signed url work
type Storage struct {
	Signs       *prometheus.CounterVec
	KeysDropped prometheus.Counter
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

func newStorage(reg prometheus.Registerer) (*Storage, error) {
	s := &Storage{
		Signs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servicegeek_storage_sign_requests_total",
			Help: "Batch sign requests per bucket and outcome.",
		}, []string{"bucket", "outcome"}),
		KeysDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servicegeek_storage_keys_unresolved_total",
			Help: "Keys that no bucket could sign.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servicegeek_storage_url_cache_hits_total",
			Help: "Signed url cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servicegeek_storage_url_cache_misses_total",
			Help: "Signed url cache misses.",
		}),
	}
	for _, c := range []prometheus.Collector{s.Signs, s.KeysDropped, s.CacheHits, s.CacheMisses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Signed records one bucket call
func (s *Storage) Signed(bucket string, ok bool) {
	if s == nil {
		return
	}
	s.Signs.WithLabelValues(bucket, outcome(ok)).Inc()
}

// Dropped records keys missing from the merged result
func (s *Storage) Dropped(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.KeysDropped.Add(float64(n))
}

// Cache records cache lookups
func (s *Storage) Cache(hits, misses int) {
	if s == nil {
		return
	}
	s.CacheHits.Add(float64(hits))
	s.CacheMisses.Add(float64(misses))
}
