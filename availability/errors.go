package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange         = errors.New("invalid date range")
	ErrMalformedReservation = errors.New("malformed reservation")
)

// InvalidRangeError is returned when a query ends before it starts.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("end date %s is before start date %s", FormatDate(e.End), FormatDate(e.Start))
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// MalformedReservation describes a reservation that was left out of an
// availability computation because its dates could not be used.
type MalformedReservation struct {
	Reservation Reservation
	Reason      string
	Err         error
}

func (m MalformedReservation) Error() string {
	ref := m.Reservation.BookingNumber
	if ref == "" {
		ref = m.Reservation.ID
	}
	if m.Err != nil {
		return fmt.Sprintf("reservation %s skipped: %s: %v", ref, m.Reason, m.Err)
	}
	return fmt.Sprintf("reservation %s skipped: %s", ref, m.Reason)
}

func (m MalformedReservation) Unwrap() []error {
	if m.Err == nil {
		return []error{ErrMalformedReservation}
	}
	return []error{ErrMalformedReservation, m.Err}
}
