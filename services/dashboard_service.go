package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/models"
)

type DashboardService struct {
	DB           *gorm.DB
	Clock        clock.Clock
	Availability *AvailabilityService
	Bookings     *BookingService
	Log          *zap.Logger
}

func NewDashboardService(db *gorm.DB, clk clock.Clock, avail *AvailabilityService, bookings *BookingService, log *zap.Logger) *DashboardService {
	return &DashboardService{DB: db, Clock: clk, Availability: avail, Bookings: bookings, Log: log}
}

type DashboardStats struct {
	TotalRooms       int     `json:"totalRooms"`
	AvailableRooms   int     `json:"availableRooms"`
	OccupiedRooms    int     `json:"occupiedRooms"`
	MaintenanceRooms int     `json:"maintenanceRooms"`
	TodayCheckIns    int     `json:"todayCheckIns"`
	TodayCheckOuts   int     `json:"todayCheckOuts"`
	OccupancyRate    float64 `json:"occupancyRate"`
}

type OccupancyPoint struct {
	Date     string  `json:"date"`
	Occupied int     `json:"occupied"`
	Total    int     `json:"total"`
	Rate     float64 `json:"rate"`
}

type OwnerDashboard struct {
	DashboardStats
	From          string               `json:"from"`
	To            string               `json:"to"`
	Bookings      int                  `json:"bookings"`
	Revenue       decimal.Decimal      `json:"revenue"`
	UpcomingStays []models.BookingView `json:"upcomingStays"`
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part * 100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

// occupancySeries returns one point per day of [start, end]: the share of
// units occupied that night.
func occupancySeries(windows []availability.Window, start, end time.Time) []OccupancyPoint {
	days := availability.DaysInRange(start, end)
	out := make([]OccupancyPoint, 0, days)
	for i := 0; i < days; i++ {
		d := availability.FormatDate(start.AddDate(0, 0, i))
		occupied := 0
		for _, w := range windows {
			if w.IsOccupied(d) {
				occupied++
			}
		}
		out = append(out, OccupancyPoint{Date: d, Occupied: occupied, Total: len(windows), Rate: percent(occupied, len(windows))})
	}
	return out
}

func roomIDs(rooms []models.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

// Stats summarises today for the rooms matching scope.
func (s *DashboardService) Stats(ctx context.Context, scope RoomFilter) (DashboardStats, error) {
	today := clock.Today(s.Clock)
	avail, err := s.Availability.Query(ctx, today, today, scope)
	if err != nil {
		return DashboardStats{}, err
	}

	var ids []string
	if scope != (RoomFilter{}) {
		ids = make([]string, 0, len(avail))
		for _, a := range avail {
			ids = append(ids, a.UnitID)
		}
	}
	ins, err := s.Bookings.TodayCheckIns(ctx, ids)
	if err != nil {
		return DashboardStats{}, err
	}
	outs, err := s.Bookings.TodayCheckOuts(ctx, ids)
	if err != nil {
		return DashboardStats{}, err
	}

	return statsFor(avail, availability.FormatDate(today), len(ins), len(outs)), nil
}

func statsFor(avail []RoomAvailability, today string, checkIns, checkOuts int) DashboardStats {
	st := DashboardStats{TotalRooms: len(avail), TodayCheckIns: checkIns, TodayCheckOuts: checkOuts}
	occupiedTonight := 0
	for _, a := range avail {
		switch a.Status {
		case availability.UnitMaintenance:
			st.MaintenanceRooms++
		case availability.UnitOccupied:
			st.OccupiedRooms++
		default:
			st.AvailableRooms++
		}
		if a.IsOccupied(today) {
			occupiedTonight++
		}
	}
	st.OccupancyRate = percent(occupiedTonight, st.TotalRooms)
	return st
}

// Occupancy returns the daily occupancy of the last days days, ending today.
func (s *DashboardService) Occupancy(ctx context.Context, days int, scope RoomFilter) ([]OccupancyPoint, error) {
	if days <= 0 || days > 366 {
		days = 30
	}
	end := clock.Today(s.Clock)
	start := end.AddDate(0, 0, -(days - 1))

	avail, err := s.Availability.Query(ctx, start, end, scope)
	if err != nil {
		return nil, err
	}
	windows := make([]availability.Window, 0, len(avail))
	for _, a := range avail {
		windows = append(windows, a.Window)
	}
	return occupancySeries(windows, start, end), nil
}

// ownerRevenue sums the owner's net share of non-cancelled bookings.
func ownerRevenue(bookings []models.BookingView) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bookings {
		if !availability.ReservationStatus(b.Status).Occupies() {
			continue
		}
		total = total.Add(b.Breakdown.NetToOwner)
	}
	return total
}

// Owner builds the owner portal dashboard for bookings arriving in
// [from, to].
func (s *DashboardService) Owner(ctx context.Context, ownerID string, from, to time.Time) (OwnerDashboard, error) {
	if to.Before(from) {
		return OwnerDashboard{}, &availability.InvalidRangeError{Start: from, End: to}
	}
	scope := RoomFilter{OwnerID: ownerID}
	stats, err := s.Stats(ctx, scope)
	if err != nil {
		return OwnerDashboard{}, err
	}

	var rooms []models.Room
	if err := scope.apply(s.DB.WithContext(ctx)).Find(&rooms).Error; err != nil {
		return OwnerDashboard{}, fmt.Errorf("load owner rooms: %w", err)
	}
	ids := roomIDs(rooms)

	var arriving []models.Booking
	err = s.DB.WithContext(ctx).
		Where("room_id IN ? AND check_in >= ? AND check_in <= ?", nonEmpty(ids), availability.FormatDate(from), availability.FormatDate(to)).
		Order("check_in").
		Find(&arriving).Error
	if err != nil {
		return OwnerDashboard{}, fmt.Errorf("load owner bookings: %w", err)
	}
	all := views(arriving)

	today := availability.FormatDate(clock.Today(s.Clock))
	upcoming := []models.BookingView{}
	for _, b := range all {
		if b.CheckIn >= today && availability.ReservationStatus(b.Status).Occupies() && len(upcoming) < 5 {
			upcoming = append(upcoming, b)
		}
	}

	return OwnerDashboard{
		DashboardStats: stats,
		From:           availability.FormatDate(from),
		To:             availability.FormatDate(to),
		Bookings:       len(all),
		Revenue:        ownerRevenue(all),
		UpcomingStays:  upcoming,
	}, nil
}
