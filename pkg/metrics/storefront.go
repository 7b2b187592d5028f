package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart transitions and checkout submissions.
type StorefrontMetrics struct {
	cartTransitions  *prometheus.CounterVec
	persistFailures  prometheus.Counter
	checkoutDuration prometheus.Histogram
	checkoutOutcomes *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_transitions_total",
		Help: "Cart state transitions by action.",
	}, []string{"action"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Best-effort cart persistence writes that failed.",
	})
	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	checkoutOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(transitions, persistFailures, checkoutDuration, checkoutOutcomes)
	return &StorefrontMetrics{
		cartTransitions:  transitions,
		persistFailures:  persistFailures,
		checkoutDuration: checkoutDuration,
		checkoutOutcomes: checkoutOutcomes,
	}
}

// IncCartTransition counts one applied cart action.
func (m *StorefrontMetrics) IncCartTransition(action string) {
	if m == nil || m.cartTransitions == nil {
		return
	}
	m.cartTransitions.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncPersistFailure counts a swallowed cart persistence failure.
func (m *StorefrontMetrics) IncPersistFailure() {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.Inc()
}

// ObserveCheckout records the duration of a checkout submission.
func (m *StorefrontMetrics) ObserveCheckout(duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.Observe(duration.Seconds())
}

// IncCheckoutOutcome counts a checkout submission result.
func (m *StorefrontMetrics) IncCheckoutOutcome(outcome string) {
	if m == nil || m.checkoutOutcomes == nil {
		return
	}
	m.checkoutOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
