package clock

import "time"

// Clock allows injecting time into services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type zonedClock struct {
	base Clock
	zone func() *time.Location
}

// InZone reports base's instant in the location zone returns, so Today
// follows the local calendar. A nil location keeps base's.
func InZone(base Clock, zone func() *time.Location) Clock {
	return zonedClock{base: base, zone: zone}
}

func (z zonedClock) Now() time.Time {
	now := z.base.Now()
	if loc := z.zone(); loc != nil {
		return now.In(loc)
	}
	return now
}

// Today returns the calendar date c is on, in c's own location, as UTC
// midnight.
func Today(c Clock) time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
