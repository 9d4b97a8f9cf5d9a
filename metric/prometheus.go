package metric

import (
	"errors"
	"time"

	"github.com/hupe1980/engram"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements engram.MetricsCollector with Prometheus metrics.
type PrometheusCollector struct {
	latency      *prometheus.HistogramVec
	bytes        *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
}

var _ engram.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &PrometheusCollector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "engram_operation_latency_seconds",
			Help:    "Latency of save and load operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engram_bytes_total",
			Help: "Total bytes saved or loaded",
		}, []string{"op"}),
		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engram_decode_errors_total",
			Help: "Total decode failures by kind",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{p.latency, p.bytes, p.decodeErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// RecordSave implements engram.MetricsCollector.
func (p *PrometheusCollector) RecordSave(bytes int, duration time.Duration, err error) {
	p.record("save", bytes, duration, err)
}

// RecordLoad implements engram.MetricsCollector.
func (p *PrometheusCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	p.record("load", bytes, duration, err)
}

// RecordDecodeError implements engram.MetricsCollector.
func (p *PrometheusCollector) RecordDecodeError(err error) {
	p.decodeErrors.WithLabelValues(errorKind(err)).Inc()
}

func (p *PrometheusCollector) record(op string, bytes int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.latency.WithLabelValues(op, status).Observe(duration.Seconds())
	if err == nil && bytes > 0 {
		p.bytes.WithLabelValues(op).Add(float64(bytes))
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, engram.ErrUnderflow):
		return "underflow"
	case errors.Is(err, engram.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, engram.ErrLengthExceeded):
		return "length_exceeded"
	case errors.Is(err, engram.ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, engram.ErrTypeMismatch):
		return "type_mismatch"
	default:
		return "other"
	}
}
