// Package metric exports engram metrics to Prometheus.
//
//	collector, err := metric.NewPrometheusCollector(prometheus.DefaultRegisterer)
//	codec := engram.New(engram.WithMetricsCollector(collector))
//	adapter := persistence.NewAdapter(store, persistence.WithMetrics(collector))
//
// Exported series:
//
//	engram_operation_latency_seconds{op,status}
//	engram_bytes_total{op}
//	engram_decode_errors_total{kind}
package metric
