package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	dirUC "bookmap/internal/usecase/directory"
)

const defaultMetricsPort = 9090

// startMetricsServer serves Prometheus metrics alongside two probes:
//
//	GET /metrics          Prometheus scrape endpoint
//	GET /health           liveness, always 200
//	GET /health/snapshot  snapshot freshness, 503 until the first refresh
//
// METRICS_PORT overrides the listen port. The server shuts down when ctx is
// cancelled.
func startMetricsServer(ctx context.Context, logger *slog.Logger, dirSvc *dirUC.Service) *http.Server {
	port := metricsPort()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/health/snapshot", snapshotHealth(dirSvc))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Info("metrics server shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
			return
		}
		logger.Info("metrics server stopped")
	}()

	return server
}

func metricsPort() int {
	raw := os.Getenv("METRICS_PORT")
	if raw == "" {
		return defaultMetricsPort
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return defaultMetricsPort
	}
	return port
}

// snapshotHealth reports whether the directory snapshot has been built yet
// and how old it is. Age zero means no refresh has completed.
func snapshotHealth(dirSvc *dirUC.Service) http.HandlerFunc {
	type response struct {
		Built      bool    `json:"built"`
		AgeSeconds float64 `json:"age_seconds"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		age := dirSvc.Age()
		status := http.StatusOK
		if age == 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, response{Built: age > 0, AgeSeconds: age.Seconds()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
