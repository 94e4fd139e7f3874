// Package availability computes, for a set of bookable units, which calendar
// dates inside a queried range are occupied by reservations.
//
// Everything in this package is a pure function of its inputs. Callers fetch
// units and reservations from storage and hand the snapshot in; nothing here
// performs I/O or keeps state between calls.
package availability

import "strings"

// UnitStatus is the lifecycle state of a bookable unit.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

// Valid reports whether s is one of the known unit states.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitOccupied, UnitMaintenance:
		return true
	}
	return false
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked-in"
	StatusCheckedOut ReservationStatus = "checked-out"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no-show"
)

var reservationStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCancelled,
	StatusNoShow,
}

// ReservationStatuses returns the full status set in lifecycle order.
func ReservationStatuses() []ReservationStatus {
	out := make([]ReservationStatus, len(reservationStatuses))
	copy(out, reservationStatuses)
	return out
}

// ParseReservationStatus normalises raw (case and surrounding space) and
// reports whether it names a known status.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
	s := ReservationStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range reservationStatuses {
		if s == known {
			return s, true
		}
	}
	return s, false
}

// Occupies reports whether a reservation in this status blocks dates.
// Only cancelled reservations release the unit; a no-show still held it.
func (s ReservationStatus) Occupies() bool {
	norm, _ := ParseReservationStatus(string(s))
	return norm != StatusCancelled
}

// Unit is a bookable inventory item such as a hotel room.
type Unit struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	Property     string     `json:"property"`
	MaxOccupancy int        `json:"max_occupancy"`
	BaseRate     string     `json:"base_rate,omitempty"`
	Status       UnitStatus `json:"status"`
}

// Reservation is a guest stay against a unit. CheckIn and CheckOut are
// calendar-date strings; CheckOut is the departure day and is not occupied.
//
// UnitID references the unit directly. Legacy records without it are matched
// on RoomNumber and Property together, since unit numbers are only unique
// within a property.
type Reservation struct {
	ID            string            `json:"id"`
	BookingNumber string            `json:"booking_number"`
	UnitID        string            `json:"unit_id,omitempty"`
	RoomNumber    string            `json:"room_number"`
	Property      string            `json:"property"`
	CheckIn       string            `json:"check_in"`
	CheckOut      string            `json:"check_out"`
	Status        ReservationStatus `json:"status"`
}

func (r Reservation) belongsTo(u Unit) bool {
	if id := strings.TrimSpace(r.UnitID); id != "" {
		return id == u.ID
	}
	return strings.TrimSpace(r.RoomNumber) == strings.TrimSpace(u.Number) &&
		strings.TrimSpace(r.Property) == strings.TrimSpace(u.Property)
}

// Window is the derived availability view of one unit over a queried range.
type Window struct {
	UnitID        string        `json:"id"`
	Number        string        `json:"number"`
	Property      string        `json:"property"`
	Status        UnitStatus    `json:"status"`
	OccupiedDates []string      `json:"occupied_dates"`
	Reservations  []Reservation `json:"reservations"`
}
