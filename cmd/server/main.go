package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"ngfw-ml-scoring/internal/config"
	"ngfw-ml-scoring/internal/handler"
	"ngfw-ml-scoring/internal/model"
	"ngfw-ml-scoring/internal/scoring"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	// Load the classifier artifact. Any load error aborts startup; serving
	// with no model would fail every request anyway.
	modelPath := resolveModelPath(cfg.Model.Path)
	classifier, err := model.Load(modelPath)
	if err != nil {
		log.WithError(err).WithField("path", modelPath).Fatal("Failed to load model artifact")
	}
	log.WithFields(logrus.Fields{
		"path":    modelPath,
		"classes": classifier.Classes(),
		"columns": len(classifier.ColumnNames()),
	}).Info("Model artifact loaded")

	// Initialize metrics and the scoring path
	registry := prometheus.NewRegistry()
	metrics := scoring.NewMetrics(registry)
	scorer := scoring.NewScorer(classifier, classifier.PositiveClass(), log, metrics)

	// Initialize HTTP handlers
	handlers := handler.NewScoreHandler(scorer, log)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)
	router.POST("/score", handlers.Score)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting scoring server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with 30 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

// resolveModelPath anchors a relative artifact path next to the binary so
// the artifact ships alongside the service.
func resolveModelPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
