package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Outbound API metrics
	OutboundRequestsTotal   *prometheus.CounterVec
	OutboundDurationSeconds *prometheus.HistogramVec

	// Delivery metrics
	DeliveryItemsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Webhook metrics
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrbot_webhook_requests_total",
				Help: "Total number of webhook requests by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error, rejected, noop
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrbot_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by intent",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30}, // Covers up to 3 outbound calls
			},
			[]string{"intent"},
		),

		// Outbound API metrics
		OutboundRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrbot_outbound_requests_total",
				Help: "Total number of outbound API calls by service and status",
			},
			[]string{"service", "status"}, // service: telegram_send, telegram_getfile, qr_decode
		),

		OutboundDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrbot_outbound_duration_seconds",
				Help:    "Outbound API call duration in seconds by service",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}, // Matches 10s call timeout
			},
			[]string{"service"},
		),

		// Delivery metrics
		DeliveryItemsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrbot_delivery_items_total",
				Help: "Total number of delivered response items by kind and status",
			},
			[]string{"kind", "status"}, // kind: text, photo
		),
	}

	return m
}

// RecordWebhook records a processed webhook request
func (m *Metrics) RecordWebhook(intent, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(intent, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordOutbound records an outbound API call
func (m *Metrics) RecordOutbound(service, status string, duration float64) {
	m.OutboundRequestsTotal.WithLabelValues(service, status).Inc()
	m.OutboundDurationSeconds.WithLabelValues(service).Observe(duration)
}

// RecordDeliveryItem records one relayed response item
func (m *Metrics) RecordDeliveryItem(kind, status string) {
	m.DeliveryItemsTotal.WithLabelValues(kind, status).Inc()
}
