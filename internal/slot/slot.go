package slot

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSlot marks date/time input that does not resolve to a real instant.
var ErrInvalidSlot = errors.New("invalid slot")

const layout = "2006-01-02 15:04"

// Slot is a court-scoped time interval. It is derived from a reservation,
// never stored on its own.
type Slot struct {
	CourtID  string
	Start    time.Time
	Duration time.Duration
}

func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Overlaps reports whether two slots contend for the same court time.
// Intervals are half-open: a slot ending at T does not conflict with one
// starting at T.
func Overlaps(a, b Slot) bool {
	if a.CourtID != b.CourtID {
		return false
	}
	return a.Start.Before(b.End()) && b.Start.Before(a.End())
}

// Normalize combines a calendar date (YYYY-MM-DD) and a time of day (HH:MM)
// into an absolute instant in loc. Inputs that parse but do not name a real
// wall-clock time (Feb 30, DST gaps) are rejected.
func Normalize(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	combined := dateStr + " " + timeStr
	t, err := time.ParseInLocation(layout, combined, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSlot, combined)
	}
	if t.Format(layout) != combined {
		return time.Time{}, fmt.Errorf("%w: %q is not a real calendar time", ErrInvalidSlot, combined)
	}
	return t, nil
}

// Grid generates the candidate slots for one calendar day: starts every
// duration step from openHour, last slot ending no later than closeHour.
func Grid(courtID string, day time.Time, openHour, closeHour int, d time.Duration) []Slot {
	open := time.Date(day.Year(), day.Month(), day.Day(), openHour, 0, 0, 0, day.Location())
	closing := time.Date(day.Year(), day.Month(), day.Day(), closeHour, 0, 0, 0, day.Location())

	var slots []Slot
	for start := open; !start.Add(d).After(closing); start = start.Add(d) {
		slots = append(slots, Slot{CourtID: courtID, Start: start, Duration: d})
	}
	return slots
}
