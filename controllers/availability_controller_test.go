package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/services"
)

type fakeAvailability struct {
	gotStart, gotEnd time.Time
	gotFilter        services.RoomFilter
	rooms            []services.RoomAvailability
	day              []services.RoomDayStatus
}

func (f *fakeAvailability) Query(_ context.Context, start, end time.Time, flt services.RoomFilter) ([]services.RoomAvailability, error) {
	f.gotStart, f.gotEnd, f.gotFilter = start, end, flt
	return f.rooms, nil
}

func (f *fakeAvailability) RoomCalendar(_ context.Context, roomID string, start, end time.Time) (services.RoomAvailability, error) {
	for _, r := range f.rooms {
		if r.UnitID == roomID {
			return r, nil
		}
	}
	return services.RoomAvailability{}, services.ErrNotFound
}

func (f *fakeAvailability) DayStatus(_ context.Context, date time.Time, flt services.RoomFilter) ([]services.RoomDayStatus, error) {
	f.gotStart, f.gotFilter = date, flt
	return f.day, nil
}

func newAvailabilityRouter(f *fakeAvailability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewAvailabilityController(f, clock.NewFixed(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)), zap.NewNop())
	r := gin.New()
	r.GET("/api/availability", ctl.Query)
	r.GET("/api/availability/rooms/:id", ctl.Room)
	r.GET("/api/availability/day", ctl.Day)
	return r
}

func TestAvailabilityQuery(t *testing.T) {
	f := &fakeAvailability{rooms: []services.RoomAvailability{{
		Window: availability.Window{
			UnitID:        "r1",
			Number:        "101",
			Property:      "Sea View",
			Status:        availability.UnitAvailable,
			OccupiedDates: []string{"2024-03-11"},
		},
		Classification: availability.PartiallyAvailable,
		AvailableDays:  2,
		TotalDays:      3,
	}}}
	r := newAvailabilityRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?start=2024-03-10&end=2024-03-12&property=Sea%20View", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if f.gotFilter.Property != "Sea View" {
		t.Fatalf("expected property filter, got %+v", f.gotFilter)
	}

	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Rooms []struct {
			ID             string   `json:"id"`
			OccupiedDates  []string `json:"occupied_dates"`
			Classification string   `json:"classification"`
		} `json:"rooms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Start != "2024-03-10" || body.End != "2024-03-12" {
		t.Fatalf("unexpected range %s..%s", body.Start, body.End)
	}
	if len(body.Rooms) != 1 || body.Rooms[0].ID != "r1" || body.Rooms[0].Classification != string(availability.PartiallyAvailable) {
		t.Fatalf("unexpected rooms %+v", body.Rooms)
	}
}

func TestAvailabilityQueryRejectsReversedRange(t *testing.T) {
	r := newAvailabilityRouter(&fakeAvailability{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?start=2024-03-12&end=2024-03-10", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "error.invalidRange" {
		t.Fatalf("expected invalidRange, got %s", env.Error.Code)
	}
}

func TestAvailabilityRoomNotFound(t *testing.T) {
	r := newAvailabilityRouter(&fakeAvailability{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/rooms/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAvailabilityDayDefaultsToToday(t *testing.T) {
	f := &fakeAvailability{day: []services.RoomDayStatus{{RoomID: "r1", Number: "101", Status: services.DayBooked}}}
	r := newAvailabilityRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/day", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := availability.FormatDate(f.gotStart); got != "2024-03-10" {
		t.Fatalf("expected today's date, got %s", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/day?date=03/10/2024", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}
