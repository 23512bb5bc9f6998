package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetDashboard godoc
// @Summary      Full supply-chain disruption dashboard
// @Description  Fetches market quotes, disruption news, disaster and vulnerability feeds concurrently and returns the merged scores, nowcast, and raw records in one payload
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboard.Dashboard
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard")
	defer span.End()

	payload, err := h.builder.Build(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard build failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to build dashboard",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, payload)
}
