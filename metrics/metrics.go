// Package metrics exposes Prometheus metrics for the blob store on a
// dedicated listener, separate from the API server.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves the /metrics endpoint and owns the operation
// counters the API handlers record into.
type MetricsServer struct {
	registry *prometheus.Registry
	srv      *http.Server

	// OpsTotal counts coordinator operations by operation (store, retrieve,
	// delete, add_node, remove_node) and result (ok, error).
	OpsTotal *prometheus.CounterVec

	// OpDuration observes coordinator operation latency in seconds.
	OpDuration *prometheus.HistogramVec

	// BlobBytes observes stored payload sizes.
	BlobBytes prometheus.Histogram
}

// New creates a metrics server listening on listenAddr, registering all
// collectors under the given namespace.
func New(namespace, listenAddr string) (*MetricsServer, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Coordinator operations by operation and result.",
	}, []string{"operation", "result"})

	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Coordinator operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	blobBytes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "blob_size_bytes",
		Help:      "Stored payload sizes.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
	})

	registry.MustRegister(opsTotal, opDuration, blobBytes)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &MetricsServer{
		registry: registry,
		srv: &http.Server{
			Addr:    listenAddr,
			Handler: mux,
		},
		OpsTotal:   opsTotal,
		OpDuration: opDuration,
		BlobBytes:  blobBytes,
	}, nil
}

// RecordOp increments the operation counter and observes its duration.
func (m *MetricsServer) RecordOp(operation string, err error, seconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.OpsTotal.WithLabelValues(operation, result).Inc()
	m.OpDuration.WithLabelValues(operation).Observe(seconds)
}

// ListenAndServe starts serving the metrics endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
