// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nurture-ai/network-agent/internal/config"
	"github.com/nurture-ai/network-agent/internal/handler"
	"github.com/nurture-ai/network-agent/internal/middleware"
	natsclient "github.com/nurture-ai/network-agent/internal/nats"
	"github.com/nurture-ai/network-agent/internal/service"
	"github.com/nurture-ai/network-agent/internal/session"
	"github.com/nurture-ai/network-agent/pkg/logger"
	"github.com/nurture-ai/network-agent/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting contact session service")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "network-agent", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS unless event publishing is disabled
	var natsConn *natsclient.Client
	var streamManager *natsclient.StreamManager
	if cfg.NATSEnabled {
		natsConn, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer natsConn.Close()

		streamManager = natsclient.NewStreamManager(natsConn)
		if err := streamManager.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure stream", zap.Error(err))
			os.Exit(1)
		}
	} else {
		log.Info("NATS disabled, contact events will not be published")
	}

	// Initialize the session store and services
	sessions := session.NewStore(cfg.SessionCapacity, log)
	contactStore := service.NewMemoryContactStore()
	contactSvc := service.NewContactService(sessions, contactStore, streamManager, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsConn)
	sessionHandler := handler.NewSessionHandler(sessions, contactSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.With(middleware.RequireScope("admin")).Get("/sessions", sessionHandler.ListSessions)

		r.Route("/sessions/{userID}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetContext)
			r.Delete("/", sessionHandler.ClearSession)
			r.Post("/search", sessionHandler.StoreSearch)

			r.Route("/draft", func(r chi.Router) {
				r.Post("/", sessionHandler.StartDraft)
				r.Get("/", sessionHandler.GetDraft)
				r.Patch("/", sessionHandler.UpdateDraft)
				r.Post("/notes", sessionHandler.AppendNotes)
				r.Post("/summary", sessionHandler.SetSummary)
				r.Post("/ready", sessionHandler.MarkReady)
				r.Post("/save", sessionHandler.SaveDraft)
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
