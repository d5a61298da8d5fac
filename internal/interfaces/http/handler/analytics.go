package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/sitebuild/backend/internal/application/report"
)

// AnalyticsHandler serves the dashboard snapshot
type AnalyticsHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(dashboardService *reportapp.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{dashboardService: dashboardService}
}

// RegisterRoutes mounts /analytics and its /dashboard alias
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.Dashboard)
	rg.GET("/analytics/dashboard", h.Dashboard)
}

// Dashboard recomputes the snapshot on every request
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	snapshot, err := h.dashboardService.Compute(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}
