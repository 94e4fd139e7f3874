package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/finance"
	"hotel-ops/services"
	"hotel-ops/utils"
)

type OwnerController struct {
	Owners *services.OwnerService
	Audit  auditor
	Log    *zap.Logger
}

func NewOwnerController(owners *services.OwnerService, audit auditor, log *zap.Logger) *OwnerController {
	return &OwnerController{Owners: owners, Audit: auditOrNop(audit), Log: log}
}

func (ctl *OwnerController) List(c *gin.Context) {
	owners, err := ctl.Owners.List(c.Request.Context())
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, owners)
}

func (ctl *OwnerController) Get(c *gin.Context) {
	owner, err := ctl.Owners.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (ctl *OwnerController) Create(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	owner, err := ctl.Owners.Create(c.Request.Context(), services.OwnerInputFromMap(body))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "owner", owner.ID, nil, owner, c.ClientIP())
	c.JSON(http.StatusCreated, owner)
}

func (ctl *OwnerController) Update(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	owner, err := ctl.Owners.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "update", "owner", owner.ID, nil, owner, c.ClientIP())
	c.JSON(http.StatusOK, owner)
}

func (ctl *OwnerController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.Owners.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "delete", "owner", id, nil, nil, c.ClientIP())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "message": "owner deleted"})
}

// Rooms handles GET /api/owners/:id/rooms.
func (ctl *OwnerController) Rooms(c *gin.Context) {
	rooms, err := ctl.Owners.Rooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// AssignRoom handles POST /api/owners/:id/rooms with {"room_id", "share_percentage"}.
func (ctl *OwnerController) AssignRoom(c *gin.Context) {
	var payload struct {
		RoomID string `json:"room_id" binding:"required"`
		Share  any    `json:"share_percentage"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	own, err := ctl.Owners.AssignRoom(c.Request.Context(), c.Param("id"), payload.RoomID, finance.ParseAmount(payload.Share))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "assign", "room", payload.RoomID, nil, own, c.ClientIP())
	c.JSON(http.StatusOK, own)
}
