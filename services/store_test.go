package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/config"
	"hotel-ops/finance"
	"hotel-ops/models"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type stack struct {
	db       *gorm.DB
	rooms    *RoomService
	bookings *BookingService
	avail    *AvailabilityService
}

func newStack(t *testing.T, today string) stack {
	t.Helper()
	db := newTestDB(t)
	clk := clock.NewFixed(mustDay(t, today).Add(9 * time.Hour))
	return stack{
		db:       db,
		rooms:    NewRoomService(db, clk),
		bookings: NewBookingService(db, clk, zap.NewNop()),
		avail:    NewAvailabilityService(db, zap.NewNop()),
	}
}

func (s stack) room(t *testing.T, property, number string) models.Room {
	t.Helper()
	r := models.Room{Number: number, PropertyName: property}
	if err := s.rooms.Create(context.Background(), &r); err != nil {
		t.Fatalf("create room %s/%s: %v", property, number, err)
	}
	return r
}

func (s stack) book(t *testing.T, roomID, in, out string) models.BookingView {
	t.Helper()
	b, err := s.bookings.Create(context.Background(), BookingInput{
		RoomID:    roomID,
		GuestName: "Guest " + in,
		CheckIn:   in,
		CheckOut:  out,
		Money:     finance.Input{Amount: decimal.NewFromInt(1000)},
	})
	if err != nil {
		t.Fatalf("book %s..%s: %v", in, out, err)
	}
	return b
}

func (s stack) roomStatus(t *testing.T, id string) string {
	t.Helper()
	r, err := s.rooms.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	return r.Status
}

func TestBookingCreateRejectsOverlap(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-01")
	ctx := context.Background()
	room := s.room(t, "P", "101")
	s.book(t, room.ID, "2024-03-10", "2024-03-13")

	_, err := s.bookings.Create(ctx, BookingInput{RoomID: room.ID, GuestName: "Late", CheckIn: "2024-03-12", CheckOut: "2024-03-14"})
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if !reflect.DeepEqual(unavailable.Dates, []string{"2024-03-12"}) {
		t.Fatalf("expected conflict on 2024-03-12, got %v", unavailable.Dates)
	}

	// departure day is free for the next arrival
	s.book(t, room.ID, "2024-03-13", "2024-03-15")

	// the same dates on another property's room 101 are unaffected
	other := s.room(t, "Q", "101")
	s.book(t, other.ID, "2024-03-10", "2024-03-13")

	res, err := s.avail.Query(ctx, mustDay(t, "2024-03-08"), mustDay(t, "2024-03-15"), RoomFilter{Property: "P"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	want := []string{"2024-03-10", "2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14"}
	if len(res) != 1 || !reflect.DeepEqual(res[0].OccupiedDates, want) {
		t.Fatalf("unexpected availability %+v", res)
	}
}

func TestBookingReactivationRechecksAvailability(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-01")
	ctx := context.Background()
	room := s.room(t, "P", "101")

	first := s.book(t, room.ID, "2024-03-10", "2024-03-13")
	if _, err := s.bookings.UpdateStatus(ctx, first.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	s.book(t, room.ID, "2024-03-11", "2024-03-12")

	if _, err := s.bookings.UpdateStatus(ctx, first.ID, "confirmed"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("UpdateStatus: expected ErrUnavailable, got %v", err)
	}
	if _, err := s.bookings.Update(ctx, first.ID, map[string]interface{}{"status": "pending"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Update: expected ErrUnavailable, got %v", err)
	}

	b, err := s.bookings.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Status != string(availability.StatusCancelled) {
		t.Fatalf("rejected reactivation must leave the booking cancelled, got %s", b.Status)
	}
}

func TestBookingStatusMovesRoom(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-10")
	ctx := context.Background()
	room := s.room(t, "P", "101")
	b := s.book(t, room.ID, "2024-03-10", "2024-03-12")

	if _, err := s.bookings.UpdateStatus(ctx, b.ID, "checked-in"); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if got := s.roomStatus(t, room.ID); got != string(availability.UnitOccupied) {
		t.Fatalf("expected occupied after check-in, got %s", got)
	}

	if _, err := s.bookings.Update(ctx, b.ID, map[string]interface{}{"status": "checked-out", "notes": "late checkout"}); err != nil {
		t.Fatalf("check out via update: %v", err)
	}
	if got := s.roomStatus(t, room.ID); got != string(availability.UnitMaintenance) {
		t.Fatalf("expected maintenance after check-out, got %s", got)
	}

	if _, err := s.rooms.UpdateStatus(ctx, room.ID, "available"); err != nil {
		t.Fatalf("clean: %v", err)
	}
	cleaned, err := s.rooms.Get(ctx, room.ID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if cleaned.LastCleanedAt == nil {
		t.Fatalf("leaving maintenance must stamp last_cleaned_at")
	}
}

func TestBookingStoresOnlySuppliedMoney(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-01")
	ctx := context.Background()
	room := s.room(t, "P", "101")

	commission := decimal.NewFromInt(50)
	created, err := s.bookings.Create(ctx, BookingInput{
		RoomID:    room.ID,
		GuestName: "Ana",
		CheckIn:   "2024-03-10",
		CheckOut:  "2024-03-12",
		Money:     finance.Input{Amount: decimal.NewFromInt(1000), Commission: &commission},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var row models.Booking
	if err := s.db.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.VAT != nil || row.TourismFee != nil || row.NetToOwner != nil || row.AmountPaid != nil {
		t.Fatalf("derived columns must stay NULL, got vat=%v fee=%v net=%v paid=%v", row.VAT, row.TourismFee, row.NetToOwner, row.AmountPaid)
	}
	if row.Commission == nil || !row.Commission.Equal(commission) {
		t.Fatalf("explicit commission must be stored, got %v", row.Commission)
	}

	v := row.View().Breakdown
	if v.Commission.StringFixed(2) != "50.00" || v.VAT.StringFixed(2) != "50.00" || v.NetToOwner.StringFixed(2) != "820.00" {
		t.Fatalf("unexpected derived view %+v", v)
	}

	updated, err := s.bookings.Update(ctx, created.ID, map[string]interface{}{"amountPaid": "200"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Breakdown.RemainingBalance.StringFixed(2) != "800.00" || updated.PaymentStatus != finance.PaymentPartial {
		t.Fatalf("expected 800.00 remaining and partial, got %s %s", updated.RemainingBalance, updated.PaymentStatus)
	}
	if err := s.db.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.VAT != nil || row.RemainingAmount != nil {
		t.Fatalf("untouched money columns must stay NULL after update")
	}
}

func TestRoomDeleteKeepsBookedRooms(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-01")
	ctx := context.Background()
	room := s.room(t, "P", "101")
	b := s.book(t, room.ID, "2024-03-10", "2024-03-13")

	if err := s.rooms.Delete(ctx, room.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	res, err := s.avail.Query(ctx, mustDay(t, "2024-03-08"), mustDay(t, "2024-03-15"), RoomFilter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(res) != 1 || len(res[0].OccupiedDates) != 3 {
		t.Fatalf("booked room must stay visible, got %+v", res)
	}
	if _, err := s.bookings.Update(ctx, b.ID, map[string]interface{}{"check_out": "2024-03-14"}); err != nil {
		t.Fatalf("booking on kept room must stay editable: %v", err)
	}

	if _, err := s.bookings.UpdateStatus(ctx, b.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := s.rooms.Delete(ctx, room.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
	if _, err := s.rooms.Get(ctx, room.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted room to be gone, got %v", err)
	}

	// the number is free again and the old booking no longer points at it
	s.room(t, "P", "101")
	var row models.Booking
	if err := s.db.First(&row, "id = ?", b.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if row.RoomID != nil || row.RoomNumber != "101" {
		t.Fatalf("expected unlinked booking keeping its room number, got %v %q", row.RoomID, row.RoomNumber)
	}
}

func TestRoomDeleteAllowsPastStays(t *testing.T) {
	t.Parallel()
	s := newStack(t, "2024-03-01")
	room := s.room(t, "P", "101")
	s.book(t, room.ID, "2024-02-20", "2024-03-01")

	if err := s.rooms.Delete(context.Background(), room.ID); err != nil {
		t.Fatalf("a stay that ended today must not block deletion: %v", err)
	}
	if err := s.rooms.Delete(context.Background(), room.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSettingsLocation(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newTestDB(t))
	ctx := context.Background()

	if svc.Location() != time.UTC {
		t.Fatalf("expected UTC before settings are read")
	}
	if _, err := svc.Update(ctx, map[string]interface{}{"timezone": "Asia/Bangkok"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.Location().String(); got != "Asia/Bangkok" {
		t.Fatalf("expected Asia/Bangkok, got %s", got)
	}

	// 20:00 UTC on the 9th is the 10th at the hotel
	clk := clock.InZone(clock.NewFixed(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)), svc.Location)
	if got := availability.FormatDate(clock.Today(clk)); got != "2024-03-10" {
		t.Fatalf("expected hotel date 2024-03-10, got %s", got)
	}
}
