// Package metrics holds the Prometheus collectors of the API.
//
// Collectors are registered on the default registry by InitMetrics, which is
// safe to call more than once. The /metrics endpoint serves them through
// promhttp.
//
// Naming follows the Prometheus conventions: counters end in _total,
// histograms in their unit.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var initOnce sync.Once

var (
	// HTTPRequestsTotal is labelled by method, route template and status.
	HTTPRequestsTotal *prometheus.CounterVec

	HTTPRequestDuration *prometheus.HistogramVec

	HTTPRequestsInProgress prometheus.Gauge

	OrdersCreatedTotal prometheus.Counter

	OrdersFailedTotal prometheus.Counter

	OrderCreationDuration prometheus.Histogram

	// OrderStatusChangesTotal is labelled by the target status.
	OrderStatusChangesTotal *prometheus.CounterVec

	// StockDecrementsTotal is labelled by result: success | insufficient | error.
	StockDecrementsTotal *prometheus.CounterVec

	// ImageUploadsTotal is labelled by entity and result: optimized | original.
	ImageUploadsTotal *prometheus.CounterVec

	EmailsSentTotal *prometheus.CounterVec

	// MessagesPublishedTotal is labelled by exchange, routing key and result.
	MessagesPublishedTotal *prometheus.CounterVec
)

func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "HTTP requests currently being served",
			},
		)

		OrdersCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Orders placed",
			},
		)

		OrdersFailedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "Checkouts rejected or failed",
			},
		)

		OrderCreationDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_creation_duration_seconds",
				Help:    "Checkout latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		)

		OrderStatusChangesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changes_total",
				Help: "Order status updates by target status",
			},
			[]string{"status"},
		)

		StockDecrementsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_decrements_total",
				Help: "Stock reductions on order fulfillment",
			},
			[]string{"result"},
		)

		ImageUploadsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_uploads_total",
				Help: "Stored images by entity and whether optimization succeeded",
			},
			[]string{"entity", "result"},
		)

		EmailsSentTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_sent_total",
				Help: "Transactional emails by template and result",
			},
			[]string{"template", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "Domain events published to the broker",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

func IncCounterVec(counter *prometheus.CounterVec, labels ...string) {
	if counter != nil {
		counter.WithLabelValues(labels...).Inc()
	}
}

func IncGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Inc()
	}
}

func DecGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Dec()
	}
}

func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram != nil {
		histogram.Observe(value)
	}
}

func ObserveHistogramVec(histogram *prometheus.HistogramVec, value float64, labels ...string) {
	if histogram != nil {
		histogram.WithLabelValues(labels...).Observe(value)
	}
}
