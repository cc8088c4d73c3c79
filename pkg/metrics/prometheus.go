package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	lastPrice   *prometheus.GaugeVec
	shocksTotal *prometheus.CounterVec
	regimeDays  *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chiptick_last_price",
				Help: "Last simulated price for a symbol",
			},
			[]string{"symbol"},
		),
		shocksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chiptick_shocks_total",
				Help: "Total number of price shocks fired",
			},
			[]string{"direction"},
		),
		regimeDays: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chiptick_regime_days_total",
				Help: "Simulated days spent per regime",
			},
			[]string{"regime"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chiptick_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chiptick_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordLastPrice records the last simulated price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordShock records a fired shock by direction ("up" or "down").
func (r *Recorder) RecordShock(direction string) {
	r.shocksTotal.WithLabelValues(direction).Inc()
}

// RecordRegimeDay records one simulated day in a regime.
func (r *Recorder) RecordRegimeDay(regime string) {
	r.regimeDays.WithLabelValues(regime).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
