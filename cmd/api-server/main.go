package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"jona.app/api-server/core/config"
	"jona.app/api-server/core/telemetry"
	"jona.app/api-server/internal/http/handler"
	"jona.app/api-server/internal/http/middleware"
	httprouter "jona.app/api-server/internal/http/router"
	"jona.app/api-server/internal/identity"
	"jona.app/api-server/internal/service"
	"jona.app/api-server/internal/store"
)

const serviceName = "api-server"

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.DebugContext(ctx, "no .env file loaded", "error", err)
	}

	cfg := config.Load()

	shutdownTelemetry := telemetry.Setup(serviceName)

	slog.InfoContext(ctx, "api-server starting", "env", cfg.Environment, "port", cfg.Port)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to reach database", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "database connected")

	stores := store.New(pool)
	provider := identity.NewClient(cfg.AuthProvider)
	sessions := middleware.NewSessionManager(provider, cfg.AuthProvider.JWTSecret, cfg.IsProduction())
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	mailer := service.NewResendMailer(cfg.Email, cfg.AppBaseURL)
	organizations := service.NewOrganizationService(stores)
	memberships := service.NewMembershipService(stores, mailer, cfg.AppBaseURL)
	stats := service.NewStatsService(stores, provider)
	scraper := service.NewScraperService(cfg.Scraper)

	handlers := httprouter.Handlers{
		Auth:         handler.NewAuthHandler(sessions, provider, stores),
		Organization: handler.NewOrganizationHandler(sessions, organizations, memberships, stats),
		Scraper:      handler.NewScraperHandler(sessions, scraper),
		Admin: httprouter.AdminHandlers{
			Users:         handler.NewUserHandler(sessions, stores),
			Resumes:       handler.NewResumeHandler(sessions, stores),
			Subscriptions: handler.NewSubscriptionHandler(sessions, stores),
			SystemConfig:  handler.NewSystemConfigHandler(sessions, stores),
			Stats:         handler.NewStatsHandler(sessions, stats),
		},
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.Recovery())
	router.Use(middleware.Gate(sessions))

	httprouter.SetupRoutes(router, sessions, handlers, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "telemetry shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}
