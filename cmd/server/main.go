// Package main provides the ManyChat bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/wayacademy/manychat-bot-go/internal/bot"
	"github.com/wayacademy/manychat-bot-go/internal/cache"
	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/genai"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
	"github.com/wayacademy/manychat-bot-go/internal/ratelimit"
	"github.com/wayacademy/manychat-bot-go/internal/sentry"
	"github.com/wayacademy/manychat-bot-go/internal/sheets"
	"github.com/wayacademy/manychat-bot-go/internal/storage"
	"github.com/wayacademy/manychat-bot-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Way Academy Chatbot Server")

	// Initialize error tracking (optional)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	}
	defer sentry.Flush(2 * time.Second)

	// Connect to the snapshot database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open snapshot database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Snapshot database connected")

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create the sheet client
	sheetClient := sheets.NewClient(
		cfg.SheetID,
		cfg.SheetTimeout,
		sheets.WithRetry(cfg.SheetMaxRetries, config.SheetRetryInitial, config.SheetRetryMax),
		sheets.WithMetrics(m),
	)
	log.WithField("sheet_id", cfg.SheetID).Info("Sheet client created")

	// Create the dataset cache, warmed from persisted snapshots
	store := cache.New(
		sheetClient,
		cache.DefaultDatasets(cfg.CoursesSheet, cfg.FAQSheet),
		cfg.CacheTTL,
		log,
		cache.WithStorage(db),
		cache.WithMetrics(m),
	)
	store.WarmFromStorage(context.Background())
	log.WithField("cache_ttl", cfg.CacheTTL).Info("Dataset cache created")

	// Create the generator chain
	generator, err := genai.NewFromConfig(context.Background(), cfg, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to create answer generator")
	}
	defer func() { _ = generator.Close() }()
	log.WithField("provider", generator.Provider()).Info("Answer generator created")

	// Create the answer pipeline
	pipeline := bot.New(store, generator, log, m, cfg.RequestBudget)

	// Per-subscriber rate limiter
	limiter := ratelimit.NewPerKey(ratelimit.PerKeyConfig{
		MaxTokens:     cfg.UserRateLimitBurst,
		RefillRate:    cfg.UserRateLimitRefillPerSec,
		CleanupPeriod: 10 * time.Minute,
		OnDrop: func(string) {
			m.RecordRateLimiterDrop("subscriber")
		},
	})
	defer limiter.Stop()

	// Create webhook handler
	webhookHandler := webhook.NewHandler(pipeline, limiter, log, m)
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, store, generator, webhookHandler, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.HTTPRead,
		WriteTimeout: config.HTTPWrite,
		IdleTimeout:  config.HTTPIdle,
	}

	// Background dataset refresh
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in dataset refresh goroutine")
			}
		}()
		refreshDatasets(ctx, store, cfg.RefreshInterval, log)
	}()

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
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("Background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
