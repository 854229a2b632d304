package config

import "time"

// Outbound call timeouts
const (
	// OutboundCall is the timeout for a single HTTP call to the Telegram API
	// or the QR service. A timed-out call is treated like any other failure.
	OutboundCall = 10 * time.Second
)

// HTTP server timeouts
const (
	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Telegram sends small JSON payloads, so this can be short.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout. It must cover the
	// full pipeline for one update: at most two outbound calls in the builder
	// plus two sequential sends in the relay.
	WebhookHTTPWrite = 50 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
