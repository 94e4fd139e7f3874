package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
)

type AuditController struct {
	Audit *services.AuditService
	Log   *zap.Logger
}

func NewAuditController(audit *services.AuditService, log *zap.Logger) *AuditController {
	return &AuditController{Audit: audit, Log: log}
}

// List handles GET /api/audit-logs?resource=&limit=.
func (ctl *AuditController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := ctl.Audit.List(c.Request.Context(), c.Query("resource"), limit)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
