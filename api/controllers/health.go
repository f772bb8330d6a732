package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/phonedesk/phonedesk-backend/api/responses"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is the probe surface exposed by the database and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PhoneDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, database, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PhoneDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok"}
		failed := false

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				checks["database"] = "unreachable"
				failed = true
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "unreachable"
				failed = true
			}
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeStoreUnavailable, "dependencies unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "ready", checks)
	}
}
