package services

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"go.uber.org/zap"

	"hotel-ops/availability"
	"hotel-ops/models"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := availability.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestConflictingDates(t *testing.T) {
	t.Parallel()

	room := models.Room{Base: models.Base{ID: "r1"}, Number: "101", PropertyName: "Marina"}
	existing := []models.Booking{
		{Base: models.Base{ID: "b1"}, RoomID: strPtr("r1"), CheckIn: "2024-03-10", CheckOut: "2024-03-12", Status: "confirmed"},
		{Base: models.Base{ID: "b2"}, RoomID: strPtr("r1"), CheckIn: "2024-03-12", CheckOut: "2024-03-14", Status: "cancelled"},
		{Base: models.Base{ID: "b3"}, RoomNumber: "101", Property: "Marina", CheckIn: "2024-03-14", CheckOut: "2024-03-15", Status: "no-show"},
		{Base: models.Base{ID: "b4"}, RoomID: strPtr("r1"), CheckIn: "bad", CheckOut: "2024-03-15", Status: "confirmed"},
	}

	tests := []struct {
		name    string
		in, out string
		exclude string
		want    []string
	}{
		{name: "back to back departure day is free", in: "2024-03-12", out: "2024-03-14", want: []string{}},
		{name: "overlaps first night", in: "2024-03-09", out: "2024-03-11", want: []string{"2024-03-10"}},
		{name: "legacy no-show blocks", in: "2024-03-13", out: "2024-03-16", want: []string{"2024-03-14"}},
		{name: "own booking excluded", in: "2024-03-10", out: "2024-03-12", exclude: "b1", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conflictingDates(room, existing, mustDay(t, tt.in), mustDay(t, tt.out), tt.exclude, zap.NewNop())
			if err != nil {
				t.Fatalf("conflictingDates: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBookingInputFromMap(t *testing.T) {
	t.Parallel()

	in := BookingInputFromMap(map[string]interface{}{
		"roomNumber": "101",
		"property":   "Marina",
		"guestName":  " Ada ",
		"check_in":   "2024-03-10",
		"checkOut":   "2024-03-12",
		"adults":     float64(2),
		"amount":     "1000",
		"commission": 50,
	})
	if in.RoomNumber != "101" || in.Property != "Marina" || in.GuestName != "Ada" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.CheckIn != "2024-03-10" || in.CheckOut != "2024-03-12" || in.Adults != 2 || in.Children != 0 {
		t.Fatalf("unexpected stay %+v", in)
	}
	if in.Money.Commission == nil || in.Money.Commission.String() != "50" || in.Money.VAT != nil {
		t.Fatalf("unexpected money %+v", in.Money)
	}
}

func TestParseStay(t *testing.T) {
	t.Parallel()

	if _, _, err := parseStay("2024-03-10", "2024-03-10"); !errors.Is(err, ErrValidation) {
		t.Fatalf("same-day stay must fail validation, got %v", err)
	}
	if _, _, err := parseStay("tomorrow", "2024-03-10"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad date must fail validation, got %v", err)
	}
	in, out, err := parseStay("2024-03-10", "2024-03-11T00:00:00Z")
	if err != nil || availability.DaysInRange(in, out) != 2 {
		t.Fatalf("unexpected stay %s %s %v", in, out, err)
	}
}

func TestParseBookingStatus(t *testing.T) {
	t.Parallel()

	if st, err := parseBookingStatus("", availability.StatusConfirmed); err != nil || st != availability.StatusConfirmed {
		t.Fatalf("expected default, got %s %v", st, err)
	}
	if st, err := parseBookingStatus("No-Show", availability.StatusConfirmed); err != nil || st != availability.StatusNoShow {
		t.Fatalf("expected no-show, got %s %v", st, err)
	}
	if _, err := parseBookingStatus("archived", availability.StatusConfirmed); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestRoomStatusAfter(t *testing.T) {
	t.Parallel()

	if st, ok := roomStatusAfter(availability.StatusCheckedIn); !ok || st != availability.UnitOccupied {
		t.Fatalf("check-in must occupy the room")
	}
	if st, ok := roomStatusAfter(availability.StatusCheckedOut); !ok || st != availability.UnitMaintenance {
		t.Fatalf("check-out must send the room to housekeeping")
	}
	if _, ok := roomStatusAfter(availability.StatusConfirmed); ok {
		t.Fatalf("confirmation must not touch the room")
	}
}

func TestNewBookingNumber(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^BK-[0-9A-F]{8}$`)
	a, b := newBookingNumber(), newBookingNumber()
	if !re.MatchString(a) || !re.MatchString(b) {
		t.Fatalf("unexpected booking numbers %q %q", a, b)
	}
	if a == b {
		t.Fatalf("booking numbers must differ")
	}
}
