package handler

import (
	"net/http"

	"github.com/saofrance/shop-api/internal/stats"
)

// HandleAdminStats returns the admin dashboard figures
// @Summary Admin statistics
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminStats
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/statistics/admin [get]
func HandleAdminStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.AdminStats(r.Context())
		if err != nil {
			respondServiceError(w, r, "admin stats", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
