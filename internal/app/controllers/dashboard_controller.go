package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/services"
	"github.com/mnogodumalon/kurs40/internal/middleware"
)

// DashboardController serves the summary counts for the stats row.
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns the per-kind record counts.
// @Summary Dashboard record counts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.Counts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
