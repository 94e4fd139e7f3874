package availability

import "time"

// Classification summarises a window over the range it was computed for.
type Classification string

const (
	FullyAvailable     Classification = "fully-available"
	PartiallyAvailable Classification = "partially-available"
	FullyBooked        Classification = "fully-booked"
)

// Classify derives the classification of w for [start, end]. It must be
// recomputed for every query since reservations change between queries.
func Classify(w Window, start, end time.Time) Classification {
	switch n := len(w.OccupiedDates); {
	case n == 0:
		return FullyAvailable
	case n >= DaysInRange(start, end):
		return FullyBooked
	default:
		return PartiallyAvailable
	}
}

// AvailableDays is the number of dates in [start, end] not occupied in w.
func AvailableDays(w Window, start, end time.Time) int {
	free := DaysInRange(start, end) - len(w.OccupiedDates)
	if free < 0 {
		return 0
	}
	return free
}
