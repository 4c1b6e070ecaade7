package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"homework_status_bot/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter exposes liveness, the poller's session snapshot and Prometheus metrics.
func NewRouter(statusSvc app.StatusService, logger *logrus.Entry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statusSvc.Snapshot()); err != nil {
			logger.WithError(err).Error("Failed to encode status snapshot")
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
