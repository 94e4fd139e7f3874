package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/services"
)

// OwnerPortalController serves the owner-facing views. Every query is
// scoped to the rooms of the authenticated owner.
type OwnerPortalController struct {
	Dashboard    *services.DashboardService
	Owners       *services.OwnerService
	Bookings     *services.BookingService
	Availability *AvailabilityController
	Cleaning     *CleaningController
	Clock        clock.Clock
	Log          *zap.Logger
}

func NewOwnerPortalController(
	dash *services.DashboardService,
	owners *services.OwnerService,
	bookings *services.BookingService,
	avail *AvailabilityController,
	cleaning *CleaningController,
	clk clock.Clock,
	log *zap.Logger,
) *OwnerPortalController {
	return &OwnerPortalController{
		Dashboard:    dash,
		Owners:       owners,
		Bookings:     bookings,
		Availability: avail,
		Cleaning:     cleaning,
		Clock:        clk,
		Log:          log,
	}
}

func (ctl *OwnerPortalController) scope(c *gin.Context) services.RoomFilter {
	return services.RoomFilter{
		OwnerID:  identity(c).SubjectID,
		Property: strings.TrimSpace(c.Query("property")),
		RoomID:   strings.TrimSpace(c.Query("room_id")),
	}
}

// DashboardView handles GET /api/owner/dashboard?from=&to=.
func (ctl *OwnerPortalController) DashboardView(c *gin.Context) {
	from, to, err := dateRange(c, ctl.Clock)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	dash, err := ctl.Dashboard.Owner(c.Request.Context(), identity(c).SubjectID, from, to)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Rooms handles GET /api/owner/rooms.
func (ctl *OwnerPortalController) Rooms(c *gin.Context) {
	rooms, err := ctl.Owners.Rooms(c.Request.Context(), identity(c).SubjectID)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctl *OwnerPortalController) AvailabilityView(c *gin.Context) {
	ctl.Availability.query(c, ctl.scope(c))
}

func (ctl *OwnerPortalController) Day(c *gin.Context) {
	ctl.Availability.day(c, ctl.scope(c))
}

func (ctl *OwnerPortalController) CleaningView(c *gin.Context) {
	ctl.Cleaning.list(c, ctl.scope(c))
}

// ownerBookingFilter reads the owner bookings query. Stay bounds are
// normalised to calendar dates before they reach the store.
func ownerBookingFilter(c *gin.Context) (services.BookingFilter, error) {
	f := services.BookingFilter{Status: strings.TrimSpace(c.Query("status"))}
	for _, q := range []struct {
		name string
		raw  string
		dst  *string
	}{
		{"from", firstQuery(c, "from", "start"), &f.From},
		{"to", firstQuery(c, "to", "end"), &f.To},
	} {
		if q.raw == "" {
			continue
		}
		d, err := availability.ParseDate(q.raw)
		if err != nil {
			return services.BookingFilter{}, invalidQuery(q.name, err)
		}
		*q.dst = availability.FormatDate(d)
	}
	if f.From != "" && f.To != "" && f.To < f.From {
		from, _ := availability.ParseDate(f.From)
		to, _ := availability.ParseDate(f.To)
		return services.BookingFilter{}, &availability.InvalidRangeError{Start: from, End: to}
	}
	return f, nil
}

// BookingsView handles GET /api/owner/bookings. Only bookings on the owner's
// rooms are returned.
func (ctl *OwnerPortalController) BookingsView(c *gin.Context) {
	f, err := ownerBookingFilter(c)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}

	ctx := c.Request.Context()
	rooms, err := ctl.Owners.Rooms(ctx, identity(c).SubjectID)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	if len(rooms) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}
	for _, r := range rooms {
		f.RoomIDs = append(f.RoomIDs, r.ID)
	}

	bookings, err := ctl.Bookings.List(ctx, f)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
