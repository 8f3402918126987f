package handlers

import (
	"net/http"

	"github.com/sbilibin2017/syncify/internal/models"
)

// NewHealthHandler returns a liveness probe.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health-check [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	}
}
