package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/models"
)

// Housekeeping states as shown to cleaning staff.
const (
	CleaningClean      = "Clean"
	CleaningDirty      = "Dirty"
	CleaningInProgress = "In Progress"
)

type CleaningService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewCleaningService(db *gorm.DB, clk clock.Clock) *CleaningService {
	return &CleaningService{DB: db, Clock: clk}
}

type CleaningStatus struct {
	RoomID      string     `json:"room_id"`
	RoomNumber  string     `json:"room_number"`
	Property    string     `json:"property"`
	Status      string     `json:"status"`
	LastCleaned *time.Time `json:"last_cleaned,omitempty"`
	NextCheckIn *string    `json:"next_check_in,omitempty"`
}

// CleaningStatusFor maps a room status onto its housekeeping state.
func CleaningStatusFor(roomStatus string) string {
	switch availability.UnitStatus(roomStatus) {
	case availability.UnitMaintenance:
		return CleaningDirty
	case availability.UnitOccupied:
		return CleaningInProgress
	default:
		return CleaningClean
	}
}

// RoomStatusForCleaning is the inverse of CleaningStatusFor.
func RoomStatusForCleaning(cleaning string) (availability.UnitStatus, error) {
	switch strings.ToLower(strings.TrimSpace(cleaning)) {
	case "clean":
		return availability.UnitAvailable, nil
	case "dirty":
		return availability.UnitMaintenance, nil
	case "in progress", "in-progress", "in_progress":
		return availability.UnitOccupied, nil
	}
	return "", fmt.Errorf("%w: cleaning status %q", ErrInvalidStatus, cleaning)
}

// nextCheckIns returns, per room id, the earliest arrival on or after today
// among occupying bookings.
func nextCheckIns(bookings []models.Booking, today string) map[string]string {
	out := map[string]string{}
	for _, b := range bookings {
		if b.RoomID == nil || !availability.ReservationStatus(b.Status).Occupies() {
			continue
		}
		if b.CheckIn < today {
			continue
		}
		if cur, ok := out[*b.RoomID]; !ok || b.CheckIn < cur {
			out[*b.RoomID] = b.CheckIn
		}
	}
	return out
}

func cleaningView(r models.Room, next map[string]string) CleaningStatus {
	cs := CleaningStatus{
		RoomID:      r.ID,
		RoomNumber:  r.Number,
		Property:    r.PropertyName,
		Status:      CleaningStatusFor(r.Status),
		LastCleaned: r.LastCleanedAt,
	}
	if d, ok := next[r.ID]; ok {
		d := d
		cs.NextCheckIn = &d
	}
	return cs
}

func (s *CleaningService) upcoming(ctx context.Context, roomIDs []string) (map[string]string, error) {
	today := availability.FormatDate(clock.Today(s.Clock))
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Where("room_id IN ? AND check_in >= ? AND status <> ?", nonEmpty(roomIDs), today, string(availability.StatusCancelled)).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load upcoming bookings: %w", err)
	}
	return nextCheckIns(bookings, today), nil
}

func (s *CleaningService) List(ctx context.Context, f RoomFilter) ([]CleaningStatus, error) {
	rooms := []models.Room{}
	if err := f.apply(s.DB.WithContext(ctx)).Order("property_name, number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	next, err := s.upcoming(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CleaningStatus, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, cleaningView(r, next))
	}
	return out, nil
}

// Update records a housekeeping state change and returns the room's new
// cleaning status.
func (s *CleaningService) Update(ctx context.Context, roomID, cleaning string) (CleaningStatus, error) {
	st, err := RoomStatusForCleaning(cleaning)
	if err != nil {
		return CleaningStatus{}, err
	}

	var room models.Room
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": string(st)}
		if st == availability.UnitAvailable {
			updates["last_cleaned_at"] = s.Clock.Now()
		}
		res := tx.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("room %w", ErrNotFound)
		}
		return tx.First(&room, "id = ?", roomID).Error
	})
	if err != nil {
		return CleaningStatus{}, err
	}

	next, err := s.upcoming(ctx, []string{room.ID})
	if err != nil {
		return CleaningStatus{}, err
	}
	return cleaningView(room, next), nil
}
