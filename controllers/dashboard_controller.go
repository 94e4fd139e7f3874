package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
)

const defaultOccupancyDays = 7

type DashboardController struct {
	Dashboard *services.DashboardService
	Log       *zap.Logger
}

func NewDashboardController(dash *services.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{Dashboard: dash, Log: log}
}

// Stats handles GET /api/dashboard/stats.
func (ctl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctl.Dashboard.Stats(c.Request.Context(), roomFilterFromQuery(c))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Occupancy handles GET /api/dashboard/occupancy?days=.
func (ctl *DashboardController) Occupancy(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultOccupancyDays)))
	if err != nil || days <= 0 || days > 366 {
		respondError(c, ctl.Log, invalidQuery("days", strconv.ErrRange))
		return
	}
	series, err := ctl.Dashboard.Occupancy(c.Request.Context(), days, roomFilterFromQuery(c))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
