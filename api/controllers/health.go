package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/yanisbelkaid/intervia-backend/api/responses"
	"github.com/yanisbelkaid/intervia-backend/pkg/config"
	"github.com/yanisbelkaid/intervia-backend/pkg/db"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
	"github.com/yanisbelkaid/intervia-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Intervia-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datastores the API cannot serve without.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Intervia-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = pingStatus(ctx, dbP, &healthy)
		checks["redis"] = pingStatus(ctx, redisP, &healthy)

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func pingStatus(ctx context.Context, p db.Pinger, healthy *bool) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		*healthy = false
		return "down"
	}
	return "up"
}
