package handler

import (
	"errors"
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the aggregated stats and report endpoints.
type DashboardHandler struct {
	dashboard    service.DashboardService
	logger       *zap.Logger
	exposeErrors bool
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger, exposeErrors bool) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger, exposeErrors: exposeErrors}
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.exposeErrors, "dashboard stats failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Reports handles GET /api/dashboard/reports?type=&startDate=&endDate=.
func (h *DashboardHandler) Reports(c *gin.Context) {
	reportType := c.Query("type")
	start := parseDateQuery(c, "startDate")
	end := parseDateQuery(c, "endDate")

	report, err := h.dashboard.Report(c.Request.Context(), reportType, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportType) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid report type"})
			return
		}
		internalError(c, h.logger, h.exposeErrors, "report generation failed", err)
		return
	}

	c.JSON(http.StatusOK, report)
}
