package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/mfcarvalho/orders-api/internal/auth"
	"github.com/mfcarvalho/orders-api/internal/config"
	"github.com/mfcarvalho/orders-api/internal/mongodb"
	"github.com/mfcarvalho/orders-api/internal/orders/adapters"
	httpadapter "github.com/mfcarvalho/orders-api/internal/orders/adapters/http"
	mongoadapter "github.com/mfcarvalho/orders-api/internal/orders/adapters/mongo"
	ordersapp "github.com/mfcarvalho/orders-api/internal/orders/app"
	ordersmetrics "github.com/mfcarvalho/orders-api/internal/orders/metrics"
	"github.com/mfcarvalho/orders-api/internal/telemetry"
)

const meterName = "github.com/mfcarvalho/orders-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect failed", "error", err)
		}
	}()

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	if cfg.Mongo.EnsureIndexes {
		logger.Info("ensuring order indexes", "collection", cfg.Mongo.Collection)
		if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
			logger.Error("failed to ensure indexes", "error", err)
			os.Exit(1)
		}
	}

	meter := otel.Meter(meterName)

	dbMetrics, err := mongodb.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create db metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := httpadapter.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}

	repo := adapters.NewObservableRepository(mongoadapter.NewRepository(coll), dbMetrics)
	verifier := auth.NewVerifier(cfg.JWT.Secret)
	service := ordersapp.NewService(repo, logger, orderMetrics)
	ordersHandler := httpadapter.NewHandler(service, verifier, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := mongodb.CheckHealth(r.Context(), client); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	ordersHandler.Register(mux)

	handler := withRecovery(withLogging(httpadapter.WithMetrics(mux, httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.Info("http request", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
