package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
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

type envelope struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Dates   []string `json:"dates"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"range", &availability.InvalidRangeError{}, http.StatusBadRequest, "error.invalidRange"},
		{"in use", fmt.Errorf("room P/101 %w by 1 active booking(s)", services.ErrInUse), http.StatusConflict, "error.inUse"},
		{"validation", fmt.Errorf("%w: name is required", services.ErrValidation), http.StatusBadRequest, "error.validation"},
		{"status", services.ErrInvalidStatus, http.StatusBadRequest, "error.invalidStatus"},
		{"not found", fmt.Errorf("room %w", services.ErrNotFound), http.StatusNotFound, "error.notFound"},
		{"duplicate", services.ErrDuplicate, http.StatusConflict, "error.duplicate"},
		{"unavailable", &services.UnavailableError{RoomID: "r1", Dates: []string{"2024-03-11"}}, http.StatusConflict, "error.unavailable"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "error.invalidCredentials"},
		{"expired", services.ErrSessionExpired, http.StatusUnauthorized, "error.sessionExpired"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "error.forbidden"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "error.internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zap.NewNop(), tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.Error.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, env.Error.Code)
			}
			if tt.code == "error.unavailable" && len(env.Error.Dates) != 1 {
				t.Fatalf("expected conflicting dates in body, got %v", env.Error.Dates)
			}
			if tt.code == "error.invalidRange" && env.Error.Message != "end date must be after start date" {
				t.Fatalf("unexpected range message %q", env.Error.Message)
			}
			if tt.code == "error.internal" && env.Error.Message == "boom" {
				t.Fatalf("internal errors must not leak their message")
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clk := clock.NewFixed(time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC))

	tests := []struct {
		query     string
		wantStart string
		wantEnd   string
		wantErr   error
	}{
		{query: "", wantStart: "2024-03-10", wantEnd: "2024-04-09"},
		{query: "start=2024-05-01", wantStart: "2024-05-01", wantEnd: "2024-05-31"},
		{query: "from=2024-05-01&to=2024-05-03", wantStart: "2024-05-01", wantEnd: "2024-05-03"},
		{query: "start=2024-05-01&end=2024-05-01", wantStart: "2024-05-01", wantEnd: "2024-05-01"},
		{query: "start=2024-05-03&end=2024-05-01", wantErr: availability.ErrInvalidRange},
		{query: "start=yesterday", wantErr: services.ErrValidation},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		start, end, err := dateRange(c, clk)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%q: expected %v, got %v", tt.query, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.query, err)
		}
		if got := availability.FormatDate(start); got != tt.wantStart {
			t.Fatalf("%q: expected start %s, got %s", tt.query, tt.wantStart, got)
		}
		if got := availability.FormatDate(end); got != tt.wantEnd {
			t.Fatalf("%q: expected end %s, got %s", tt.query, tt.wantEnd, got)
		}
	}
}

func TestOwnerBookingFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		from, to string
		wantErr  error
	}{
		{query: "", from: "", to: ""},
		{query: "from=2024-03-10T00:00:00%2B07:00&to=2024-03-12", from: "2024-03-10", to: "2024-03-12"},
		{query: "start=2024-03-10&end=2024-03-10T18:00:00Z", from: "2024-03-10", to: "2024-03-10"},
		{query: "to=tomorrow", wantErr: services.ErrValidation},
		{query: "from=2024-03-12&to=2024-03-10", wantErr: availability.ErrInvalidRange},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		f, err := ownerBookingFilter(c)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%q: expected %v, got %v", tt.query, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.query, err)
		}
		if f.From != tt.from || f.To != tt.to {
			t.Fatalf("%q: expected %q..%q, got %q..%q", tt.query, tt.from, tt.to, f.From, f.To)
		}
	}
}
