package controllers

import (
	"net/http"

	"github.com/quotewerk/quotewerk-backend/api/responses"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/db"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quotewerk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the backing stores. A degraded dependency flips the
// response to 503 so the load balancer can rotate the instance out.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quotewerk-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "readiness check failed for db")
				}
			} else {
				checks["db"] = "up"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "readiness check failed for redis")
				}
			} else {
				checks["redis"] = "up"
			}
		}

		status := "ready"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, code, map[string]any{"status": status, "checks": checks})
	}
}
