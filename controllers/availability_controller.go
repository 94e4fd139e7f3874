package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/services"
)

type availabilityQuerier interface {
	Query(ctx context.Context, start, end time.Time, f services.RoomFilter) ([]services.RoomAvailability, error)
	RoomCalendar(ctx context.Context, roomID string, start, end time.Time) (services.RoomAvailability, error)
	DayStatus(ctx context.Context, date time.Time, f services.RoomFilter) ([]services.RoomDayStatus, error)
}

type AvailabilityController struct {
	Availability availabilityQuerier
	Clock        clock.Clock
	Log          *zap.Logger
}

func NewAvailabilityController(avail availabilityQuerier, clk clock.Clock, log *zap.Logger) *AvailabilityController {
	return &AvailabilityController{Availability: avail, Clock: clk, Log: log}
}

type availabilityResponse struct {
	Start string                      `json:"start"`
	End   string                      `json:"end"`
	Rooms []services.RoomAvailability `json:"rooms"`
}

// Query handles GET /api/availability?start=&end=&property=.
func (ctl *AvailabilityController) Query(c *gin.Context) {
	ctl.query(c, services.RoomFilter{
		Property: strings.TrimSpace(c.Query("property")),
		RoomID:   strings.TrimSpace(c.Query("room_id")),
		OwnerID:  strings.TrimSpace(c.Query("owner_id")),
	})
}

func (ctl *AvailabilityController) query(c *gin.Context, f services.RoomFilter) {
	start, end, err := dateRange(c, ctl.Clock)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	rooms, err := ctl.Availability.Query(c.Request.Context(), start, end, f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, availabilityResponse{
		Start: availability.FormatDate(start),
		End:   availability.FormatDate(end),
		Rooms: rooms,
	})
}

// Room handles GET /api/availability/rooms/:id.
func (ctl *AvailabilityController) Room(c *gin.Context) {
	start, end, err := dateRange(c, ctl.Clock)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ra, err := ctl.Availability.RoomCalendar(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, ra)
}

// Day handles GET /api/availability/day?date=.
func (ctl *AvailabilityController) Day(c *gin.Context) {
	ctl.day(c, services.RoomFilter{Property: strings.TrimSpace(c.Query("property"))})
}

func (ctl *AvailabilityController) day(c *gin.Context, f services.RoomFilter) {
	date := clock.Today(ctl.Clock)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := availability.ParseDate(raw)
		if err != nil {
			respondError(c, ctl.Log, invalidQuery("date", err))
			return
		}
		date = d
	}
	statuses, err := ctl.Availability.DayStatus(c.Request.Context(), date, f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": availability.FormatDate(date), "rooms": statuses})
}
