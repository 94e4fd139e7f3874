package services

import (
	"errors"
	"testing"

	"hotel-ops/models"
)

func TestPermissionLabelFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"update_cleaning_status": "Update Cleaning Status",
		"view_audit_logs":        "View Audit Logs",
		"finances":               "Finances",
	}
	for in, want := range cases {
		if got := PermissionLabelFor(in); got != want {
			t.Fatalf("%s: expected %q, got %q", in, want, got)
		}
	}
}

func TestCatalogue(t *testing.T) {
	t.Parallel()

	groups := Catalogue()
	if len(groups) != len(models.PermissionCategories) {
		t.Fatalf("expected %d groups, got %d", len(models.PermissionCategories), len(groups))
	}
	total := 0
	for _, g := range groups {
		total += len(g.Permissions)
	}
	if total != len(models.AllPermissions()) {
		t.Fatalf("catalogue lost permissions: %d", total)
	}
}

func TestPermissionMatrix(t *testing.T) {
	t.Parallel()

	m := permissionMatrix([]string{models.PermViewRooms, models.PermViewAuditLogs})
	if !m["rooms"][models.PermViewRooms] || m["rooms"][models.PermManageRooms] {
		t.Fatalf("unexpected rooms entry %v", m["rooms"])
	}
	if !m["security"][models.PermViewAuditLogs] {
		t.Fatalf("expected security grant")
	}
	if _, ok := m["bookings"][models.PermManageBookings]; !ok {
		t.Fatalf("every catalogue entry must be present")
	}
}

func TestValidatePermissions(t *testing.T) {
	t.Parallel()

	got, err := validatePermissions([]string{"view_rooms", " view_rooms ", "manage_rooms"})
	if err != nil || len(got) != 2 {
		t.Fatalf("expected deduplicated list, got %v err=%v", got, err)
	}
	if _, err := validatePermissions([]string{"launch_rockets"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
