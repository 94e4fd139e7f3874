package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/models"
)

type RoomService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewRoomService(db *gorm.DB, clk clock.Clock) *RoomService {
	return &RoomService{DB: db, Clock: clk}
}

// RoomFilter narrows room listings. Zero values match everything.
type RoomFilter struct {
	Property string
	OwnerID  string
	RoomID   string
	Status   string
}

func (f RoomFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Property != "" {
		db = db.Where("property_name = ?", f.Property)
	}
	if f.OwnerID != "" {
		db = db.Where("owner_id = ?", f.OwnerID)
	}
	if f.RoomID != "" {
		db = db.Where("id = ?", f.RoomID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	return db
}

func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	rooms := []models.Room{}
	err := f.apply(s.DB.WithContext(ctx)).Order("property_name, number").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return models.Room{}, translateDBError(err, "room")
	}
	return room, nil
}

func normaliseRoomStatus(raw string) (string, error) {
	st := availability.UnitStatus(strings.ToLower(strings.TrimSpace(raw)))
	if st == "" {
		return string(availability.UnitAvailable), nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("%w: room status %q", ErrInvalidStatus, raw)
	}
	return string(st), nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	room.PropertyName = strings.TrimSpace(room.PropertyName)
	if room.Number == "" {
		return validationf("room number is required")
	}
	if room.PropertyName == "" {
		return validationf("property name is required")
	}
	if room.MaxOccupancy <= 0 {
		room.MaxOccupancy = 2
	}
	status, err := normaliseRoomStatus(room.Status)
	if err != nil {
		return err
	}
	room.Status = status
	room.ID = ""

	if err := s.DB.WithContext(ctx).Create(room).Error; err != nil {
		return translateDBError(err, fmt.Sprintf("room %s/%s", room.PropertyName, room.Number))
	}
	return nil
}

var roomUpdatable = map[string]bool{
	"number": true, "property_name": true, "type": true, "floor": true,
	"max_occupancy": true, "base_rate": true, "status": true, "amenities": true,
	"description": true, "owner_id": true,
}

// Update applies a partial update. Keys outside the updatable column set are
// ignored.
func (s *RoomService) Update(ctx context.Context, id string, updates map[string]any) (models.Room, error) {
	clean := map[string]any{}
	for k, v := range updates {
		if roomUpdatable[k] {
			clean[k] = v
		}
	}
	if raw, ok := clean["status"]; ok {
		status, err := normaliseRoomStatus(fmt.Sprint(raw))
		if err != nil {
			return models.Room{}, err
		}
		clean["status"] = status
	}
	if a, ok := clean["amenities"]; ok {
		clean["amenities"] = jsonValue(a)
	}

	room, err := s.Get(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	if len(clean) == 0 {
		return room, nil
	}
	if err := s.DB.WithContext(ctx).Model(&room).Updates(clean).Error; err != nil {
		return models.Room{}, translateDBError(err, "room")
	}
	return s.Get(ctx, id)
}

// Delete removes a room for good. A room with a current or upcoming stay is
// refused; past bookings keep their room number and property but lose the
// link so the number can be reused.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	today := availability.FormatDate(clock.Today(s.Clock))
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "id = ?", id).Error; err != nil {
			return translateDBError(err, "room")
		}

		var active int64
		err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND status <> ? AND check_out > ?", room.ID, string(availability.StatusCancelled), today).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("count active bookings: %w", err)
		}
		if active > 0 {
			return fmt.Errorf("room %s/%s %w by %d active booking(s)", room.PropertyName, room.Number, ErrInUse, active)
		}

		if err := tx.Unscoped().Model(&models.Booking{}).Where("room_id = ?", room.ID).Update("room_id", nil).Error; err != nil {
			return fmt.Errorf("unlink bookings: %w", err)
		}
		if err := tx.Unscoped().Where("room_id = ?", room.ID).Delete(&models.PropertyOwnership{}).Error; err != nil {
			return fmt.Errorf("drop ownership: %w", err)
		}
		return tx.Unscoped().Delete(&room).Error
	})
}

// UpdateStatus sets the room lifecycle status. Leaving maintenance for
// available counts as a completed clean.
func (s *RoomService) UpdateStatus(ctx context.Context, id, status string) (models.Room, error) {
	if strings.TrimSpace(status) == "" {
		return models.Room{}, fmt.Errorf("%w: room status is required", ErrInvalidStatus)
	}
	st, err := normaliseRoomStatus(status)
	if err != nil {
		return models.Room{}, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setRoomStatus(tx, id, st, s.Clock)
	})
	if err != nil {
		return models.Room{}, err
	}
	return s.Get(ctx, id)
}

func setRoomStatus(tx *gorm.DB, id, status string, clk clock.Clock) error {
	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "id = ?", id).Error; err != nil {
		return translateDBError(err, "room")
	}
	updates := map[string]any{"status": status}
	if status == string(availability.UnitAvailable) && room.Status == string(availability.UnitMaintenance) {
		updates["last_cleaned_at"] = clk.Now()
	}
	return tx.Model(&room).Updates(updates).Error
}

// Properties lists distinct property names.
func (s *RoomService) Properties(ctx context.Context) ([]string, error) {
	props := []string{}
	err := s.DB.WithContext(ctx).Model(&models.Room{}).Distinct().Order("property_name").Pluck("property_name", &props).Error
	return props, err
}
