package monitoring

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "service"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	// Scheduling engine metrics
	slotsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slots_generated_total",
			Help: "Total number of time slots generated",
		},
		[]string{"source", "service"},
	)

	templateExpansionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_expansions_total",
			Help: "Total number of availability template expansions",
		},
		[]string{"status", "service"},
	)

	conflictsDetectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conflicts_detected_total",
			Help: "Total number of scheduling conflicts detected",
		},
		[]string{"conflict_type", "severity", "service"},
	)

	conflictScanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conflict_scan_duration_seconds",
			Help:    "Duration of conflict detection scans in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"service"},
	)

	bulkOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_operations_total",
			Help: "Total number of bulk slot operations",
		},
		[]string{"operation", "status", "service"},
	)

	// System metrics
	systemErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "system_errors_total",
			Help: "Total number of system errors",
		},
		[]string{"error_type", "service", "component"},
	)
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	serviceName string
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(serviceName string) *MetricsCollector {
	// Register metrics
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		slotsGeneratedTotal,
		templateExpansionsTotal,
		conflictsDetectedTotal,
		conflictScanDuration,
		bulkOperationsTotal,
		systemErrors,
	)

	return &MetricsCollector{
		serviceName: serviceName,
	}
}

// RecordHTTPRequest records HTTP request metrics
func (mc *MetricsCollector) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode), mc.serviceName).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, mc.serviceName).Observe(duration.Seconds())
}

// RecordSlotsGenerated records how many slots a generation source produced
func (mc *MetricsCollector) RecordSlotsGenerated(source string, count int) {
	slotsGeneratedTotal.WithLabelValues(source, mc.serviceName).Add(float64(count))
}

// RecordTemplateExpansion records a template expansion attempt
func (mc *MetricsCollector) RecordTemplateExpansion(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	templateExpansionsTotal.WithLabelValues(status, mc.serviceName).Inc()
}

// RecordConflict records a detected scheduling conflict
func (mc *MetricsCollector) RecordConflict(conflictType, severity string) {
	conflictsDetectedTotal.WithLabelValues(conflictType, severity, mc.serviceName).Inc()
}

// RecordConflictScan records the duration of a full conflict scan
func (mc *MetricsCollector) RecordConflictScan(duration time.Duration) {
	conflictScanDuration.WithLabelValues(mc.serviceName).Observe(duration.Seconds())
}

// RecordBulkOperation records a bulk slot operation
func (mc *MetricsCollector) RecordBulkOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	bulkOperationsTotal.WithLabelValues(operation, status, mc.serviceName).Inc()
}

// RecordError records a system error
func (mc *MetricsCollector) RecordError(errorType, component string) {
	systemErrors.WithLabelValues(errorType, mc.serviceName, component).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts a dedicated metrics HTTP server
func (mc *MetricsCollector) StartMetricsServer(port int, path string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle(path, mc.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsMux,
	}

	// Metrics are best-effort; the main service keeps running if this
	// listener fails.
	go func() {
		_ = server.ListenAndServe()
	}()

	return server
}
