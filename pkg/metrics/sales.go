package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Cart events counted by SaleMetrics.
const (
	EventHold   = "hold"
	EventResume = "resume"
	EventClear  = "clear"
)

// Checkout stages that can fail.
const (
	StageCreate   = "create"
	StageFinalize = "finalize"
	StageHistory  = "history"
)

// SaleMetrics records checkout outcomes for the till. A nil *SaleMetrics is a no-op.
type SaleMetrics struct {
	finalized  prometheus.Counter
	failures   *prometheus.CounterVec
	events     *prometheus.CounterVec
	grandTotal prometheus.Histogram
	duration   prometheus.Histogram
}

// NewSaleMetrics registers the sale metrics on the provided registerer.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	finalized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_finalized_total",
		Help: "Sales recorded and marked paid.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sale_failures_total",
		Help: "Checkout failures by stage.",
	}, []string{"stage"})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_events_total",
		Help: "Cart hold, resume and clear events.",
	}, []string{"event"})
	grandTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_sale_grand_total",
		Help:    "Grand total of finalized sales in the till currency.",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_duration_seconds",
		Help:    "Time spent recording and finalizing a sale.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(finalized, failures, events, grandTotal, duration)
	return &SaleMetrics{
		finalized:  finalized,
		failures:   failures,
		events:     events,
		grandTotal: grandTotal,
		duration:   duration,
	}
}

// ObserveFinalized records a successful checkout.
func (m *SaleMetrics) ObserveFinalized(grandTotal decimal.Decimal, took time.Duration) {
	if m == nil || m.finalized == nil {
		return
	}
	m.finalized.Inc()
	m.grandTotal.Observe(grandTotal.InexactFloat64())
	m.duration.Observe(took.Seconds())
}

// IncFailure counts a checkout failure at stage.
func (m *SaleMetrics) IncFailure(stage string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncEvent counts a cart lifecycle event.
func (m *SaleMetrics) IncEvent(event string) {
	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
