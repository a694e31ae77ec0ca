package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/saofrance/shop-api/internal/database"
	"github.com/saofrance/shop-api/internal/logger"
)

// ReadinessTimeout bounds the database ping of the readiness probe
const ReadinessTimeout = 2 * time.Second

// Integration states reported by the readiness probe
const (
	CheckUp       = "up"
	CheckDown     = "down"
	CheckEnabled  = "enabled"
	CheckDisabled = "disabled"
)

// Integrations records which optional outbound channels are configured.
// A disabled integration is reported but never fails readiness.
type Integrations struct {
	Payments  bool
	Mail      bool
	StaffFeed bool
}

func (i Integrations) checks() map[string]string {
	state := func(on bool) string {
		if on {
			return CheckEnabled
		}
		return CheckDisabled
	}
	return map[string]string{
		"payments":   state(i.Payments),
		"mail":       state(i.Mail),
		"staff_feed": state(i.StaffFeed),
	}
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz pings the database and lists the optional integrations
// @Summary Readiness check
// @Description 503 when the database is unreachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, integrations Integrations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		checks := integrations.checks()
		if err := dbPool.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
			checks["database"] = CheckDown
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: MsgDatabaseConnFailed,
				Checks:  checks,
			})
			return
		}
		checks["database"] = CheckUp
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK, Checks: checks})
	}
}
