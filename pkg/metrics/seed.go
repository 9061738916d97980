package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	SeedResultLoaded  = "loaded"
	SeedResultSkipped = "skipped"
	SeedResultFailed  = "failed"
)

// SeedMetrics records bootstrap data loads.
type SeedMetrics struct {
	duration prometheus.Histogram
	loads    *prometheus.CounterVec
}

// NewSeedMetrics registers the seed load metrics on the provided registerer.
func NewSeedMetrics(reg prometheus.Registerer) *SeedMetrics {
	if reg == nil {
		return &SeedMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "seed_load_duration_seconds",
		Help:    "Duration of seed data loads in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seed_load_total",
		Help: "Seed load attempts by result.",
	}, []string{"result"})
	reg.MustRegister(duration, loads)
	return &SeedMetrics{
		duration: duration,
		loads:    loads,
	}
}

// ObserveLoad records the duration and result of one load attempt.
func (s *SeedMetrics) ObserveLoad(result string, elapsed time.Duration) {
	if s == nil || s.loads == nil {
		return
	}
	if result != SeedResultSkipped {
		s.duration.Observe(elapsed.Seconds())
	}
	s.loads.WithLabelValues(normalizeLabel(result)).Inc()
}
