package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/ports"
)

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Results returns the ranked dashboard: every submission with total, average,
// judge count and score spread, plus the top three (superadmin only).
//
// @Summary      Results dashboard
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  domain.Results
// @Router       /analytics/results [get]
func (h *AnalyticsHandler) Results(c echo.Context) error {
	results, err := h.analytics.Results(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}
