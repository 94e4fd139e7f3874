package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
)

type SettingsController struct {
	Settings *services.SettingsService
	Audit    auditor
	Log      *zap.Logger
}

func NewSettingsController(settings *services.SettingsService, audit auditor, log *zap.Logger) *SettingsController {
	return &SettingsController{Settings: settings, Audit: auditOrNop(audit), Log: log}
}

func (ctl *SettingsController) GetHotel(c *gin.Context) {
	hotel, err := ctl.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (ctl *SettingsController) UpdateHotel(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Settings.Get(ctx)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	hotel, err := ctl.Settings.Update(ctx, body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(ctx, identity(c), "update", "settings", strconv.FormatUint(uint64(hotel.ID), 10), before, hotel, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}
