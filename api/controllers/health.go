package controllers

import (
	"net/http"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/pkg/config"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/redis"
)

// Health reports process liveness plus the state of the two hard dependencies.
// A failing dependency flips the status and the HTTP code so load balancers
// can rotate the instance out.
func Health(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.database", err)
				}
			} else {
				checks["database"] = "up"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.redis", err)
				}
			} else {
				checks["redis"] = "up"
			}
		}

		status := "ok"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("X-Gearstock-Env", cfg.App.Env)
		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
