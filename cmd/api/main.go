package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/apexadvisory/rsvp-api/config"
	"github.com/apexadvisory/rsvp-api/internal/handlers"
	"github.com/apexadvisory/rsvp-api/internal/middleware"
	"github.com/apexadvisory/rsvp-api/internal/services"
	"github.com/apexadvisory/rsvp-api/pkg/httpclient"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/apexadvisory/rsvp-api/pkg/mailer"
	"github.com/apexadvisory/rsvp-api/pkg/metrics"
	"github.com/apexadvisory/rsvp-api/pkg/profiling"
	"github.com/apexadvisory/rsvp-api/pkg/sheets"
	"github.com/apexadvisory/rsvp-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting RSVP API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("event", cfg.Event.ShortName),
	)

	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.AlloyEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, profiling.LabelsFromConfig(cfg.Observability, cfg.Server.AppEnv))
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Background loops stop once a shutdown signal arrives
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.RecordInfrastructureMetrics(appCtx)

	if cfg.Sheets.WebhookURL == "" {
		logger.Warn("GOOGLE_SHEETS_WEBHOOK_URL not set, submissions will not be stored")
	}
	if cfg.Mail.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL not set, admin notices go to the sender mailbox",
			zap.String("sender", cfg.Mail.Username))
	}

	store := sheets.NewClient(cfg.Sheets.WebhookURL, httpclient.NewStandardClient(cfg.Sheets.Timeout()))
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
	})

	rsvpConfig, err := services.NewRSVPConfig(cfg)
	if err != nil {
		logger.Fatal("Invalid event configuration", zap.Error(err))
	}
	rsvpService := services.NewRSVPService(rsvpConfig, store, sender)

	rsvpHandler := handlers.NewRSVPHandler(rsvpService)
	healthHandler := handlers.NewHealthHandler()

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	rsvpRateLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	handlers.RegisterRSVPRoutes(router, rsvpHandler, rsvpRateLimiter)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Two SMTP round trips plus the storage webhook
		WriteTimeout:   2 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-appCtx.Done()
	logger.Info("Shutting down server...")

	// In-flight submissions may be mid-SMTP; give them time to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
