package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/choppi/admin-web/pkg/logger"
)

// Pinger is the readiness probe surface of an optional dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Liveness reports process health.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Readiness checks the optional session cache. A nil cache is healthy: the
// app degrades to per-request profile fetches without it.
func Readiness(cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "health.cache_unreachable")
				}
				writeHealth(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"cache":  "unreachable",
				})
				return
			}
		}
		writeHealth(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeHealth(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
