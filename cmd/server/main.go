// Package main provides the Telegram QR bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/qrgram/qrbot-go/internal/bot"
	"github.com/qrgram/qrbot-go/internal/buildinfo"
	"github.com/qrgram/qrbot-go/internal/config"
	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/metrics"
	"github.com/qrgram/qrbot-go/internal/qrservice"
	"github.com/qrgram/qrbot-go/internal/sentry"
	"github.com/qrgram/qrbot-go/internal/telegram"
	"github.com/qrgram/qrbot-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{
		Level:               cfg.LogLevel,
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.WithField("version", buildinfo.Version).Info("Starting QR bot server")

	// Initialize error tracking (no-op without a token)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking initialized")
	}
	defer sentry.Flush(2 * time.Second)

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create Telegram client (verifies the token with a getMe call)
	tgClient, err := telegram.NewClient(telegram.ClientConfig{
		Token:       cfg.TelegramToken,
		APIEndpoint: cfg.TelegramAPIEndpoint,
		Timeout:     cfg.APITimeout,
		Metrics:     m,
		Logger:      log.WithModule("telegram"),
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram client")
	}
	log.WithField("bot", tgClient.BotUsername()).Info("Telegram client created")

	// Create QR service client (decode always goes through the web service)
	qrClient := qrservice.NewClient(cfg.QRServiceBaseURL, cfg.Render, cfg.APITimeout, m)

	// Pick the generator backend
	var generator bot.Generator = qrClient
	if cfg.Generator == config.GeneratorLocal {
		generator = qrservice.NewLocalGenerator(cfg.Render)
	}
	log.WithField("generator", cfg.Generator).Info("QR service client created")

	// Assemble the message pipeline
	builder := bot.NewBuilder(generator, qrClient, tgClient, log)
	relay := bot.NewRelay(tgClient, cfg.DeliveryPolicy, m, log)

	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Builder:        builder,
		Relay:          relay,
		DeliveryPolicy: cfg.DeliveryPolicy,
		Metrics:        m,
		Logger:         log,
	})
	log.WithField("delivery_policy", cfg.DeliveryPolicy).Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(corsMiddleware())
	router.Use(loggingMiddleware(log.WithModule("http")))

	// Setup routes
	setupRoutes(router, webhookHandler, tgClient, registry)

	// Create HTTP server with timeouts sized for synchronous webhook handling
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Shutdown server gracefully; in-flight webhook requests get to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
