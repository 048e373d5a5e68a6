package controllers

import (
	"context"
	"net/http"

	"github.com/AskiaMohamed22/ngenius-backend/api/responses"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
)

const envHeader = "X-Ngenius-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP == nil || redisP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "readiness dependencies not wired"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
			return
		}
		if err := redisP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "ready"})
	}
}
