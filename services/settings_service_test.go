package services

import (
	"errors"
	"testing"
)

func TestSettingsUpdates(t *testing.T) {
	t.Parallel()

	u, err := settingsUpdates(map[string]interface{}{
		"companyName":  "Marina Suites",
		"timezone":     "Asia/Dubai",
		"taxRate":      "5",
		"checkInTime":  "15:00",
		"checkOutTime": "11:30",
		"unknown":      "ignored",
	})
	if err != nil {
		t.Fatalf("settingsUpdates: %v", err)
	}
	if u["name"] != "Marina Suites" || u["timezone"] != "Asia/Dubai" || u["check_in_time"] != "15:00" {
		t.Fatalf("unexpected updates %v", u)
	}
	if _, ok := u["unknown"]; ok {
		t.Fatalf("unknown keys must be dropped")
	}

	bad := []map[string]interface{}{
		{"timezone": "Mars/Olympus"},
		{"taxRate": 150},
		{"checkInTime": "3pm"},
	}
	for _, m := range bad {
		if _, err := settingsUpdates(m); !errors.Is(err, ErrValidation) {
			t.Fatalf("%v: expected ErrValidation, got %v", m, err)
		}
	}
}
