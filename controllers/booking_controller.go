package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"
)

type bookingStore interface {
	List(ctx context.Context, f services.BookingFilter) ([]models.BookingView, error)
	Recent(ctx context.Context, limit int) ([]models.BookingView, error)
	Get(ctx context.Context, id string) (models.BookingView, error)
	GetByNumber(ctx context.Context, number string) (models.BookingView, error)
	Create(ctx context.Context, in services.BookingInput) (models.BookingView, error)
	Update(ctx context.Context, id string, m map[string]interface{}) (models.BookingView, error)
	UpdateStatus(ctx context.Context, id, raw string) (models.BookingView, error)
	Delete(ctx context.Context, id string) error
	TodayCheckIns(ctx context.Context, roomIDs []string) ([]models.BookingView, error)
	TodayCheckOuts(ctx context.Context, roomIDs []string) ([]models.BookingView, error)
}

type bookingExporter interface {
	BookingsXLSX(ctx context.Context, w io.Writer, f services.BookingFilter) error
}

type BookingController struct {
	Bookings bookingStore
	Exporter bookingExporter
	Audit    auditor
	Log      *zap.Logger
}

func NewBookingController(bookings bookingStore, export bookingExporter, audit auditor, log *zap.Logger) *BookingController {
	return &BookingController{Bookings: bookings, Exporter: export, Audit: auditOrNop(audit), Log: log}
}

func bookingFilterFromQuery(c *gin.Context) services.BookingFilter {
	f := services.BookingFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Property: strings.TrimSpace(c.Query("property")),
		From:     firstQuery(c, "from", "start"),
		To:       firstQuery(c, "to", "end"),
	}
	if id := strings.TrimSpace(c.Query("room_id")); id != "" {
		f.RoomIDs = []string{id}
	}
	return f
}

// ----------------------------------------------------
// 1. Get Bookings (GET /api/bookings)
// ----------------------------------------------------

func (ctl *BookingController) List(c *gin.Context) {
	bookings, err := ctl.Bookings.List(c.Request.Context(), bookingFilterFromQuery(c))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ----------------------------------------------------
// 2. Recent Bookings (GET /api/bookings/recent)
// ----------------------------------------------------

func (ctl *BookingController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	bookings, err := ctl.Bookings.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ----------------------------------------------------
// 3. Get Booking (GET /api/bookings/:id)
// ----------------------------------------------------

// Get accepts either the booking id or its booking number.
func (ctl *BookingController) Get(c *gin.Context) {
	ref := c.Param("id")
	ctx := c.Request.Context()

	var (
		b   models.BookingView
		err error
	)
	if strings.HasPrefix(strings.ToUpper(ref), "BK-") {
		b, err = ctl.Bookings.GetByNumber(ctx, ref)
	} else {
		b, err = ctl.Bookings.Get(ctx, ref)
	}
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ----------------------------------------------------
// 4. Create Booking (POST /api/bookings)
// ----------------------------------------------------

func (ctl *BookingController) Create(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	b, err := ctl.Bookings.Create(c.Request.Context(), services.BookingInputFromMap(body))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "create", "booking", b.ID, nil, b, c.ClientIP())
	c.JSON(http.StatusCreated, b)
}

// ----------------------------------------------------
// 5. Update Booking (PUT /api/bookings/:id)
// ----------------------------------------------------

func (ctl *BookingController) Update(c *gin.Context) {
	body, ok := bindMap(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	before, err := ctl.Bookings.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	b, err := ctl.Bookings.Update(ctx, before.ID, body)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(ctx, identity(c), "update", "booking", b.ID, before, b, c.ClientIP())
	c.JSON(http.StatusOK, b)
}

// ----------------------------------------------------
// 6. Update Booking Status (PATCH /api/bookings/:id/status)
// ----------------------------------------------------

func (ctl *BookingController) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	b, err := ctl.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "status", "booking", b.ID, nil, gin.H{"status": b.Status}, c.ClientIP())
	c.JSON(http.StatusOK, b)
}

// ----------------------------------------------------
// 7. Delete Booking (DELETE /api/bookings/:id)
// ----------------------------------------------------

func (ctl *BookingController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.Bookings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	ctl.Audit.Record(c.Request.Context(), identity(c), "delete", "booking", id, nil, nil, c.ClientIP())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "message": "booking deleted"})
}

// ----------------------------------------------------
// 8. Today's arrivals and departures
// ----------------------------------------------------

func (ctl *BookingController) TodayCheckIns(c *gin.Context) {
	bookings, err := ctl.Bookings.TodayCheckIns(c.Request.Context(), nil)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctl *BookingController) TodayCheckOuts(c *gin.Context) {
	bookings, err := ctl.Bookings.TodayCheckOuts(c.Request.Context(), nil)
	if err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ----------------------------------------------------
// 9. Export Bookings (GET /api/bookings/export)
// ----------------------------------------------------

func (ctl *BookingController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctl.Exporter.BookingsXLSX(c.Request.Context(), &buf, bookingFilterFromQuery(c)); err != nil {
		respondError(c, ctl.Log, err)
		return
	}
	sendXLSX(c, "bookings", buf.Bytes())
}
