package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/radheshyamgupta01/TLF-sub001/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Listing metrics
	ListingOperationsCounter prometheus.CounterVec
	ListingViewsCounter      prometheus.Counter

	// Inquiry metrics
	InquiryOperationsCounter prometheus.CounterVec
	DuplicateInquiryCounter  prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ListingOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_listing_operations_total",
			Help: "Total number of listing operations",
		},
		[]string{"operation"},
	)

	ListingViewsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_listing_views_total",
			Help: "Total number of listing detail views",
		},
	)

	InquiryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_inquiry_operations_total",
			Help: "Total number of inquiry operations",
		},
		[]string{"operation"},
	)

	DuplicateInquiryCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_inquiry_duplicates_total",
			Help: "Total number of inquiries rejected by the dedup window",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordListingOperation increments the counter for listing operations
func RecordListingOperation(operation string) {
	ListingOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInquiryOperation increments the counter for inquiry operations
func RecordInquiryOperation(operation string) {
	InquiryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}
