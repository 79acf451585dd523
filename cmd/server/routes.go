// Package main provides the ManyChat bot server entry point.
package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayacademy/manychat-bot-go/internal/cache"
	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/facts"
	"github.com/wayacademy/manychat-bot-go/internal/genai"
	"github.com/wayacademy/manychat-bot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, cfg *config.Config, store *cache.Store, generator *genai.FallbackGenerator, webhookHandler *webhook.Handler, registry *prometheus.Registry) {
	// Root endpoint - service info
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "active",
			"service":   "Way Academy Chatbot API",
			"timestamp": time.Now().Format(time.RFC3339),
			"endpoints": gin.H{
				"/healthz":          "liveness probe",
				"/ready":            "readiness probe",
				"/manychat/webhook": "ManyChat webhook",
				"/courses":          "active courses",
				"/faqs":             "active FAQ entries",
			},
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only that the process is running, no dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - dataset and generator availability
	readyHandler := func(c *gin.Context) {
		status := store.Status()

		loaded := true
		for _, st := range status {
			if !st.Loaded {
				loaded = false
			}
		}

		code := http.StatusOK
		state := "ready"
		if !loaded {
			code = http.StatusServiceUnavailable
			state = "not ready"
		}

		c.JSON(code, gin.H{
			"status":    state,
			"datasets":  status,
			"generator": generator.IsEnabled(),
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// ManyChat External Request endpoint
	router.POST("/manychat/webhook", webhookHandler.Handle)

	// Simplified dataset views
	router.GET("/courses", func(c *gin.Context) {
		courses, err := store.Get(c.Request.Context(), cache.DatasetCourses)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load courses"})
			return
		}

		simplified := make([]gin.H, 0, len(courses))
		for i := range courses {
			r := &courses[i]
			simplified = append(simplified, gin.H{
				"id":       r.CourseID,
				"name":     r.CourseName,
				"teacher":  r.Teacher,
				"duration": r.Duration,
				"price":    r.PriceFull,
				"discount": r.PriceDiscount,
				"schedule": r.Schedule1,
			})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(courses), "courses": simplified})
	})

	router.GET("/faqs", func(c *gin.Context) {
		faqs, err := store.Get(c.Request.Context(), cache.DatasetFAQs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load faqs"})
			return
		}

		simplified := make([]gin.H, 0, len(faqs))
		for i := range faqs {
			r := &faqs[i]
			simplified = append(simplified, gin.H{
				"id":             r.FAQID,
				"keywords":       r.QKeywords,
				"answer_preview": facts.Truncate(r.Answer, 100),
			})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(faqs), "faqs": simplified})
	})

	// Admin: force a dataset refresh, bypassing the TTL
	admin := router.Group("/admin", adminAuthMiddleware(cfg.AdminToken))
	admin.POST("/refresh", func(c *gin.Context) {
		counts := store.RefreshAll(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "refreshed", "datasets": counts})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
