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
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/config"
	"github.com/kailas-cloud/lexord/internal/db"
	dbRedis "github.com/kailas-cloud/lexord/internal/db/redis"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	logpkg "github.com/kailas-cloud/lexord/internal/logger"
	"github.com/kailas-cloud/lexord/internal/metrics"
	corpusrepo "github.com/kailas-cloud/lexord/internal/repository/corpus"
	documentrepo "github.com/kailas-cloud/lexord/internal/repository/document"
	queryrepo "github.com/kailas-cloud/lexord/internal/repository/query"
	reportrepo "github.com/kailas-cloud/lexord/internal/repository/report"
	chiTransport "github.com/kailas-cloud/lexord/internal/transport/chi"
	"github.com/kailas-cloud/lexord/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/lexord/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/lexord/internal/usecase/ingest"
	queryuc "github.com/kailas-cloud/lexord/internal/usecase/query"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
	"github.com/kailas-cloud/lexord/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexord API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Every command this service issues speaks plain RESP, so both
	// driver names map to the one rueidis-backed store.
	var store db.Store
	store, err = dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the oracle to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Oracle store not ready", zap.Error(err))
	}
	logger.Info("Connected to oracle store")

	// Register metrics explicitly (no init())
	metrics.RegisterIngestMetrics()
	metrics.RegisterVerifyMetrics()

	// Validate the configured default codec domain on boot, not on first request.
	defaults := domcorp.CodecParams{
		Width: cfg.Codec.Width,
		Min:   cfg.Codec.Min,
		Max:   cfg.Codec.Max,
	}
	if _, err := lexord.New(defaults.Width, defaults.Min, defaults.Max); err != nil {
		logger.Fatal("Invalid default codec domain", zap.Error(err))
	}

	// Create repositories (domain-native, no adapters)
	prefix := cfg.Storage.KeyPrefix
	corpRepo := corpusrepo.New(store, prefix)
	docRepo := documentrepo.New(store, prefix)
	queryRepo := queryrepo.New(store, prefix)
	reportRepo := reportrepo.New(store, prefix, time.Duration(cfg.Verify.ReportTTLSec)*time.Second)

	// Create use case services
	corpSvc := corpus.New(corpRepo, defaults)
	ingestSvc := ingestuc.New(docRepo, docRepo, corpRepo).
		WithMaxBatchSize(cfg.Ingest.MaxBatchSize)
	querySvc := queryuc.New(corpRepo, queryRepo).
		WithLimits(cfg.Query.DefaultLimit, cfg.Query.MaxLimit)

	codecFor := func(width int, min, max int64) (verifyuc.Codec, error) {
		return lexord.New(width, min, max)
	}
	verifySvc := verifyuc.New(corpRepo, queryRepo, reportRepo, codecFor,
		verifyuc.WithDefaultSamples(cfg.Verify.Samples),
		verifyuc.WithDefaultSeed(cfg.Verify.Seed),
		verifyuc.WithRunsCounter(metrics.VerifyRunsTotal),
		verifyuc.WithRunDuration(metrics.VerifyRunDuration),
	)

	// Health service — store doubles as the search-module probe
	healthSvc := healthuc.New(store, store)

	// Create chi server
	server := chiTransport.NewServer(corpSvc, ingestSvc, querySvc, verifySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
