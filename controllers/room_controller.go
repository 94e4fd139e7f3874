package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"
)

type RoomController struct {
	Rooms *services.RoomService
	Audit auditor
	Log   *zap.Logger
}

func NewRoomController(rooms *services.RoomService, audit auditor, log *zap.Logger) *RoomController {
	return &RoomController{Rooms: rooms, Audit: auditOrNop(audit), Log: log}
}

func roomFilterFromQuery(c *gin.Context) services.RoomFilter {
	return services.RoomFilter{
		Property: strings.TrimSpace(c.Query("property")),
		OwnerID:  strings.TrimSpace(c.Query("owner_id")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
}

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms)
// ----------------------------------------------------

func (ctl *RoomController) List(c *gin.Context) {
	rooms, err := ctl.Rooms.List(c.Request.Context(), roomFilterFromQuery(c))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Get Room (GET /api/rooms/:id)
// ----------------------------------------------------

func (ctl *RoomController) Get(c *gin.Context) {
	room, err := ctl.Rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 3. Create Room (POST /api/rooms)
// ----------------------------------------------------

func (ctl *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		badPayload(c, err)
		return
	}
	if err := ctl.Rooms.Create(c.Request.Context(), &room); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "room", room.ID, nil, room, c.ClientIP())
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 4. Update Room (PUT /api/rooms/:id)
// ----------------------------------------------------

func (ctl *RoomController) Update(c *gin.Context) {
	updates, ok := bindMap(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Rooms.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	room, err := ctl.Rooms.Update(ctx, before.ID, updates)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(ctx, identity(c), "update", "room", room.ID, before, room, c.ClientIP())
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 5. Update Room Status (PATCH /api/rooms/:id/status)
// ----------------------------------------------------

func (ctl *RoomController) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	room, err := ctl.Rooms.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "status", "room", room.ID, nil, gin.H{"status": room.Status}, c.ClientIP())
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 6. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func (ctl *RoomController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "delete", "room", id, nil, nil, c.ClientIP())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "message": "room deleted"})
}

// Properties lists the distinct property names rooms belong to.
func (ctl *RoomController) Properties(c *gin.Context) {
	props, err := ctl.Rooms.Properties(c.Request.Context())
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, props)
}
