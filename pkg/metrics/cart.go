package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeItemAdded       = "item_added"
	OutcomeItemIncremented = "item_incremented"
)

// CartMetrics counts cart mutations.
type CartMetrics struct {
	operations *prometheus.CounterVec
	created    prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Successful add-to-cart operations by outcome.",
	}, []string{"outcome"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carts_created_total",
		Help: "Carts created on first add.",
	})
	reg.MustRegister(operations, created)
	return &CartMetrics{
		operations: operations,
		created:    created,
	}
}

// IncOperation increments the operation counter for the given outcome.
func (c *CartMetrics) IncOperation(outcome string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCartCreated increments the created carts counter.
func (c *CartMetrics) IncCartCreated() {
	if c == nil || c.created == nil {
		return
	}
	c.created.Inc()
}
