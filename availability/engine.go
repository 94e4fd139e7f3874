package availability

import (
	"sort"
	"time"
)

// Option tunes a single availability computation.
type Option func(*options)

type options struct {
	onSkip func(MalformedReservation)
}

// WithSkipHandler registers fn to be told about every reservation that was
// left out because its dates are unusable. fn runs synchronously.
func WithSkipHandler(fn func(MalformedReservation)) Option {
	return func(o *options) {
		o.onSkip = fn
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// stay is a reservation with its dates already parsed.
type stay struct {
	res      Reservation
	checkIn  time.Time
	checkOut time.Time
}

// ComputeAvailability returns one Window per unit, in input order, listing the
// dates in [startDate, endDate] that are occupied by a non-cancelled
// reservation of that unit. Units with nothing booked are still returned with
// an empty date list.
func ComputeAvailability(units []Unit, reservations []Reservation, startDate, endDate time.Time, opts ...Option) ([]Window, error) {
	start, end, err := normaliseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	stays := collectStays(reservations, o)

	windows := make([]Window, 0, len(units))
	for _, u := range units {
		windows = append(windows, buildWindow(u, stays, start, end))
	}
	return windows, nil
}

// ComputeUnitAvailability is the single-unit form of ComputeAvailability.
// Reservations that belong to other units are ignored, and only this unit's
// malformed reservations are reported.
func ComputeUnitAvailability(unit Unit, reservations []Reservation, startDate, endDate time.Time, opts ...Option) (Window, error) {
	start, end, err := normaliseRange(startDate, endDate)
	if err != nil {
		return Window{}, err
	}
	own := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.belongsTo(unit) {
			own = append(own, r)
		}
	}
	stays := collectStays(own, buildOptions(opts))
	return buildWindow(unit, stays, start, end), nil
}

func normaliseRange(startDate, endDate time.Time) (time.Time, time.Time, error) {
	start, end := Day(startDate), Day(endDate)
	if end.Before(start) {
		return time.Time{}, time.Time{}, &InvalidRangeError{Start: start, End: end}
	}
	return start, end, nil
}

func collectStays(reservations []Reservation, o options) []stay {
	stays := make([]stay, 0, len(reservations))
	skip := func(r Reservation, reason string, err error) {
		if o.onSkip != nil {
			o.onSkip(MalformedReservation{Reservation: r, Reason: reason, Err: err})
		}
	}
	for _, r := range reservations {
		if !r.Status.Occupies() {
			continue
		}
		in, err := ParseDate(r.CheckIn)
		if err != nil {
			skip(r, "unparseable check-in date", err)
			continue
		}
		out, err := ParseDate(r.CheckOut)
		if err != nil {
			skip(r, "unparseable check-out date", err)
			continue
		}
		if !out.After(in) {
			skip(r, "check-out is not after check-in", nil)
			continue
		}
		stays = append(stays, stay{res: r, checkIn: in, checkOut: out})
	}
	return stays
}

func buildWindow(u Unit, stays []stay, start, end time.Time) Window {
	w := Window{
		UnitID:        u.ID,
		Number:        u.Number,
		Property:      u.Property,
		Status:        u.Status,
		OccupiedDates: []string{},
		Reservations:  []Reservation{},
	}

	// Half-open per stay: [checkIn, checkOut). The query end is inclusive.
	limit := end.AddDate(0, 0, 1)
	occupied := make(map[string]struct{})
	for _, s := range stays {
		if !s.res.belongsTo(u) {
			continue
		}
		from := s.checkIn
		if from.Before(start) {
			from = start
		}
		to := s.checkOut
		if to.After(limit) {
			to = limit
		}
		if !from.Before(to) {
			continue
		}
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			occupied[FormatDate(d)] = struct{}{}
		}
		w.Reservations = append(w.Reservations, s.res)
	}

	for d := range occupied {
		w.OccupiedDates = append(w.OccupiedDates, d)
	}
	sort.Strings(w.OccupiedDates)
	return w
}

// IsOccupied reports whether date (YYYY-MM-DD) is in the window's occupied set.
func (w Window) IsOccupied(date string) bool {
	i := sort.SearchStrings(w.OccupiedDates, date)
	return i < len(w.OccupiedDates) && w.OccupiedDates[i] == date
}
