package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-ops/availability"
	"hotel-ops/models"
)

type AvailabilityService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAvailabilityService(db *gorm.DB, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{DB: db, Log: log}
}

// RoomAvailability is an availability window with its summary.
type RoomAvailability struct {
	availability.Window
	Classification availability.Classification `json:"classification"`
	AvailableDays  int                         `json:"available_days"`
	TotalDays      int                         `json:"total_days"`
}

// Day status values for a single calendar date.
const (
	DayAvailable   = "available"
	DayBooked      = "booked"
	DayMaintenance = "maintenance"
)

type RoomDayStatus struct {
	RoomID   string `json:"room_id"`
	Number   string `json:"number"`
	Property string `json:"property"`
	Status   string `json:"status"`
}

// snapshot loads the rooms matching f and every reservation touching
// [start, end]. Reservations are not filtered by room here; the engine
// matches them.
func (s *AvailabilityService) snapshot(ctx context.Context, start, end time.Time, f RoomFilter) ([]models.Room, []models.Booking, error) {
	rooms := []models.Room{}
	if err := f.apply(s.DB.WithContext(ctx)).Order("property_name, number").Find(&rooms).Error; err != nil {
		return nil, nil, fmt.Errorf("load rooms: %w", err)
	}
	if len(rooms) == 0 {
		return rooms, nil, nil
	}

	ids := make([]string, 0, len(rooms))
	props := map[string]bool{}
	for _, r := range rooms {
		ids = append(ids, r.ID)
		props[r.PropertyName] = true
	}
	propList := make([]string, 0, len(props))
	for p := range props {
		propList = append(propList, p)
	}

	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Where("room_id IN ? OR (room_id IS NULL AND property IN ?)", ids, propList).
		Where("check_in <= ? AND check_out > ?", availability.FormatDate(end), availability.FormatDate(start)).
		Find(&bookings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("load bookings: %w", err)
	}
	return rooms, bookings, nil
}

func summarise(windows []availability.Window, start, end time.Time) []RoomAvailability {
	total := availability.DaysInRange(start, end)
	out := make([]RoomAvailability, 0, len(windows))
	for _, w := range windows {
		out = append(out, RoomAvailability{
			Window:         w,
			Classification: availability.Classify(w, start, end),
			AvailableDays:  availability.AvailableDays(w, start, end),
			TotalDays:      total,
		})
	}
	return out
}

// Query computes availability for every room matching f over [start, end].
func (s *AvailabilityService) Query(ctx context.Context, start, end time.Time, f RoomFilter) ([]RoomAvailability, error) {
	if end.Before(start) {
		return nil, &availability.InvalidRangeError{Start: start, End: end}
	}
	rooms, bookings, err := s.snapshot(ctx, start, end, f)
	if err != nil {
		return nil, err
	}
	windows, err := availability.ComputeAvailability(
		models.RoomUnits(rooms),
		models.BookingReservations(bookings),
		start, end,
		availability.WithSkipHandler(logSkipped(s.Log)),
	)
	if err != nil {
		return nil, err
	}
	return summarise(windows, availability.Day(start), availability.Day(end)), nil
}

// RoomCalendar computes availability for one room.
func (s *AvailabilityService) RoomCalendar(ctx context.Context, roomID string, start, end time.Time) (RoomAvailability, error) {
	out, err := s.Query(ctx, start, end, RoomFilter{RoomID: roomID})
	if err != nil {
		return RoomAvailability{}, err
	}
	if len(out) == 0 {
		return RoomAvailability{}, fmt.Errorf("room %w", ErrNotFound)
	}
	return out[0], nil
}

// DayStatus reports, per room, whether date is free, booked or blocked by
// maintenance. Maintenance wins over bookings.
func (s *AvailabilityService) DayStatus(ctx context.Context, date time.Time, f RoomFilter) ([]RoomDayStatus, error) {
	rooms, bookings, err := s.snapshot(ctx, date, date, f)
	if err != nil {
		return nil, err
	}
	windows, err := availability.ComputeAvailability(
		models.RoomUnits(rooms),
		models.BookingReservations(bookings),
		date, date,
		availability.WithSkipHandler(logSkipped(s.Log)),
	)
	if err != nil {
		return nil, err
	}
	return dayStatuses(windows, availability.FormatDate(date)), nil
}

func dayStatuses(windows []availability.Window, date string) []RoomDayStatus {
	out := make([]RoomDayStatus, 0, len(windows))
	for _, w := range windows {
		st := DayAvailable
		switch {
		case w.Status == availability.UnitMaintenance:
			st = DayMaintenance
		case w.IsOccupied(date):
			st = DayBooked
		}
		out = append(out, RoomDayStatus{RoomID: w.UnitID, Number: w.Number, Property: w.Property, Status: st})
	}
	return out
}
