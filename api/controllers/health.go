package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is any dependency the readiness probe can reach.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck names one dependency probed by HealthReady.
type ReadinessCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Terminal", cfg.Terminal.ID)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every check and fails with DEPENDENCY_ERROR on the first
// unreachable one.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Terminal", cfg.Terminal.ID)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := map[string]string{}
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready").
					WithDetails(map[string]string{"dependency": check.Name}))
				return
			}
			status[check.Name] = "ok"
		}
		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
