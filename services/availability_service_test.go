package services

import (
	"errors"
	"testing"

	"hotel-ops/availability"
	"hotel-ops/models"
)

func TestDayStatuses(t *testing.T) {
	t.Parallel()

	windows := []availability.Window{
		{UnitID: "r1", Number: "101", Status: availability.UnitAvailable, OccupiedDates: []string{}},
		{UnitID: "r2", Number: "102", Status: availability.UnitAvailable, OccupiedDates: []string{"2024-03-10"}},
		{UnitID: "r3", Number: "103", Status: availability.UnitMaintenance, OccupiedDates: []string{"2024-03-10"}},
	}
	got := dayStatuses(windows, "2024-03-10")
	want := []string{DayAvailable, DayBooked, DayMaintenance}
	for i, w := range want {
		if got[i].Status != w {
			t.Fatalf("room %s: expected %s, got %s", got[i].Number, w, got[i].Status)
		}
	}
}

func TestSummarise(t *testing.T) {
	t.Parallel()

	start, end := mustDay(t, "2024-03-10"), mustDay(t, "2024-03-13")
	out := summarise([]availability.Window{
		{UnitID: "r1", OccupiedDates: []string{"2024-03-11"}},
		{UnitID: "r2", OccupiedDates: []string{}},
	}, start, end)

	if out[0].Classification != availability.PartiallyAvailable || out[0].AvailableDays != 3 || out[0].TotalDays != 4 {
		t.Fatalf("unexpected summary %+v", out[0])
	}
	if out[1].Classification != availability.FullyAvailable || out[1].AvailableDays != 4 {
		t.Fatalf("unexpected summary %+v", out[1])
	}
}

func TestCleaningStatusMapping(t *testing.T) {
	t.Parallel()

	for _, st := range []availability.UnitStatus{availability.UnitAvailable, availability.UnitOccupied, availability.UnitMaintenance} {
		back, err := RoomStatusForCleaning(CleaningStatusFor(string(st)))
		if err != nil || back != st {
			t.Fatalf("round trip of %s gave %s %v", st, back, err)
		}
	}
	if _, err := RoomStatusForCleaning("sparkling"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if st, _ := RoomStatusForCleaning("in-progress"); st != availability.UnitOccupied {
		t.Fatalf("expected occupied, got %s", st)
	}
}

func TestNextCheckIns(t *testing.T) {
	t.Parallel()

	bookings := []models.Booking{
		{RoomID: strPtr("r1"), CheckIn: "2024-03-20", Status: "confirmed"},
		{RoomID: strPtr("r1"), CheckIn: "2024-03-12", Status: "pending"},
		{RoomID: strPtr("r1"), CheckIn: "2024-03-11", Status: "cancelled"},
		{RoomID: strPtr("r2"), CheckIn: "2024-03-01", Status: "confirmed"},
		{CheckIn: "2024-03-10", Status: "confirmed"},
	}
	got := nextCheckIns(bookings, "2024-03-10")
	if got["r1"] != "2024-03-12" {
		t.Fatalf("expected 2024-03-12, got %q", got["r1"])
	}
	if _, ok := got["r2"]; ok {
		t.Fatalf("past arrivals must be ignored")
	}

	cs := cleaningView(models.Room{Base: models.Base{ID: "r1"}, Number: "101", Status: "maintenance"}, got)
	if cs.Status != CleaningDirty || cs.NextCheckIn == nil || *cs.NextCheckIn != "2024-03-12" {
		t.Fatalf("unexpected cleaning view %+v", cs)
	}
}
