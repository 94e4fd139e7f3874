package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	c := NewFixed(at)
	if !c.Now().Equal(at) {
		t.Fatalf("expected %s, got %s", at, c.Now())
	}
	if c.Now().Location() != time.UTC {
		t.Fatalf("expected UTC location")
	}

	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := Today(c); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSystem(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	got := NewSystem().Now()
	if got.Before(before.Add(-time.Second)) {
		t.Fatalf("system clock went backwards: %s < %s", got, before)
	}
}

func TestInZone(t *testing.T) {
	t.Parallel()

	// 20:00 UTC on the 9th is already the 10th in Bangkok.
	base := NewFixed(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC))
	ict := time.FixedZone("ICT", 7*3600)

	zoned := InZone(base, func() *time.Location { return ict })
	if !zoned.Now().Equal(base.Now()) {
		t.Fatalf("zoned clock must report the same instant")
	}
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := Today(zoned); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	utc := InZone(base, func() *time.Location { return nil })
	if got := Today(utc); !got.Equal(want.AddDate(0, 0, -1)) {
		t.Fatalf("nil zone must keep the base calendar, got %s", got)
	}
}
