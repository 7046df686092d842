package controllers

import (
	"net/http"

	"github.com/contactdesk/contactdesk-backend/api/responses"
	"github.com/contactdesk/contactdesk-backend/pkg/config"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/kv"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ContactDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, kvStore kv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ContactDesk-Env", cfg.App.Env)

		if kvStore == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "kv store unavailable"))
			return
		}
		if err := kvStore.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv store unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
