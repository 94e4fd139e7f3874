package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/services"
)

type CleaningController struct {
	Cleaning *services.CleaningService
	Audit    auditor
	Log      *zap.Logger
}

func NewCleaningController(cleaning *services.CleaningService, audit auditor, log *zap.Logger) *CleaningController {
	return &CleaningController{Cleaning: cleaning, Audit: auditOrNop(audit), Log: log}
}

// List handles GET /api/cleaning.
func (ctl *CleaningController) List(c *gin.Context) {
	ctl.list(c, roomFilterFromQuery(c))
}

func (ctl *CleaningController) list(c *gin.Context, f services.RoomFilter) {
	statuses, err := ctl.Cleaning.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// Update handles PATCH /api/cleaning/:roomId with {"status":"Clean|Dirty|In Progress"}.
func (ctl *CleaningController) Update(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	st, err := ctl.Cleaning.Update(c.Request.Context(), c.Param("roomId"), payload.Status)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "cleaning", "room", st.RoomID, nil, st, c.ClientIP())
	c.JSON(http.StatusOK, st)
}
