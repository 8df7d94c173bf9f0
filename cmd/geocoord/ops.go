package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/metrics"
	healthuc "github.com/kailas-cloud/geocoord/internal/usecase/health"
)

const opsShutdownTimeout = 5 * time.Second

// healthChecker is satisfied by *healthuc.Service.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// newOpsRouter serves /metrics and /healthz. httpMetrics may be nil.
func newOpsRouter(reg *prometheus.Registry, health healthChecker, httpMetrics *metrics.HTTP, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}
	r.Get("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		report := health.Check(req.Context())
		status := http.StatusOK
		if report.Status != healthuc.Healthy {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.Error("Failed to write health reply", zap.Error(err))
		}
	})
	return r
}

// opsServer runs the ops endpoint until stop is called.
type opsServer struct {
	srv    *http.Server
	logger *zap.Logger
	done   chan error
}

func startOpsServer(addr string, handler http.Handler, logger *zap.Logger) *opsServer {
	s := &opsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		logger: logger,
		done:   make(chan error, 1),
	}
	go func() {
		logger.Info("Starting ops server", zap.String("addr", addr))
		err := s.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return s
}

func (s *opsServer) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Error during ops server shutdown", zap.Error(err))
		return err
	}
	err := <-s.done
	s.logger.Info("Ops server stopped")
	return err
}
