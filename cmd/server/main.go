package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/joho/godotenv"

	"github.com/eventboard/events-api/internal/api"
	"github.com/eventboard/events-api/internal/auth"
	"github.com/eventboard/events-api/internal/config"
	"github.com/eventboard/events-api/internal/metrics"
	"github.com/eventboard/events-api/pkg/events"
	"github.com/eventboard/events-api/pkg/events/urlresolver"
)

const (
	envDevelopment = "development"
	envProduction  = "production"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := setupLogger(cfg.Server.Environment)
	ctx := context.Background()

	repos, cleanup, err := cfg.BuildRepositories(ctx)
	if err != nil {
		log.Error("failed to build repositories", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	blobs, err := cfg.BuildBlobStore(ctx)
	if err != nil {
		log.Error("failed to build blob store", "error", err)
		os.Exit(1)
	}

	sink := metrics.NewSink()

	svc, err := events.New(
		events.WithRepository(repos.Events),
		events.WithBlobStore(blobs),
		events.WithEventSink(sink),
		events.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	resolver := urlresolver.New(blobs,
		urlresolver.WithPublicBase(cfg.S3.PublicBase),
		urlresolver.WithDefaultExpiry(cfg.S3.PresignExpiry),
		urlresolver.WithLogger(log),
	)

	tokens := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)
	authService := auth.New(log, repos.Users, tokens, cfg.Auth.TokenTTL)

	server := api.NewServer(log, svc, authService, resolver, blobs, tokens,
		api.WithMetricsHandler(sink.Handler()))

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Routes(),
	}

	go func() {
		log.Info("events API starting",
			"port", cfg.Server.Port,
			"env", cfg.Server.Environment,
			"db", cfg.DB.Type,
			"storage", cfg.S3.Type,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exiting")
}

func setupLogger(env string) *slog.Logger {
	var handler slog.Handler
	switch env {
	case envProduction:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
