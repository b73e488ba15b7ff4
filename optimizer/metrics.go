package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zarlabs/zardian/quote"
)

const (
	outcomeOK            = "ok"
	outcomeInvalidAmount = "invalid_amount"
	outcomeNoQuotes      = "no_quotes"
)

// Metrics holds the optimizer's Prometheus metrics.
// A nil *Metrics is a valid no-op instance
type Metrics struct {
	quotesFetched *prometheus.CounterVec
	quoteFailures *prometheus.CounterVec
	optimizations *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewMetrics creates and registers the optimizer metrics with the
// default Prometheus registry. Call at most once per process
func NewMetrics() *Metrics {
	return &Metrics{
		quotesFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zardian_quotes_fetched_total",
				Help: "Total number of exchange quotes successfully fetched",
			},
			[]string{"exchange"},
		),
		quoteFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zardian_quote_failures_total",
				Help: "Total number of failed exchange quote fetches",
			},
			[]string{"exchange", "kind"},
		),
		optimizations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zardian_optimizations_total",
				Help: "Total number of optimization requests, by outcome",
			},
			[]string{"outcome"},
		),
		duration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "zardian_optimization_duration_seconds",
				Help:    "Duration of optimization requests",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *Metrics) quoteFetched(exchange quote.Exchange) {
	if m == nil {
		return
	}

	m.quotesFetched.WithLabelValues(exchange.String()).Inc()
}

func (m *Metrics) quoteFailed(exchange quote.Exchange, kind FailureKind) {
	if m == nil {
		return
	}

	m.quoteFailures.WithLabelValues(exchange.String(), string(kind)).Inc()
}

func (m *Metrics) optimizationDone(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.optimizations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
