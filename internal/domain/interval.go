package domain

import (
	"fmt"
	"time"
)

// TimeInterval is a half-open span of absolute time [Start, End).
// Zero-length and inverted intervals are treated as empty and dropped wherever produced.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether the interval covers at least one instant
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the length of the interval, zero for empty intervals
func (i TimeInterval) Duration() time.Duration {
	if !i.IsValid() {
		return 0
	}
	return i.End.Sub(i.Start)
}

// Contains reports whether other lies fully inside i
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// In returns the same interval expressed in loc
func (i TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// BusySource identifies where a busy interval came from
type BusySource string

const (
	BusySourceBooking  BusySource = "booking"
	BusySourceCalendar BusySource = "calendar"
)

// BusyInterval is time the owner cannot be booked.
// The engine treats all sources identically; Source is kept for logging.
type BusyInterval struct {
	TimeInterval
	Source BusySource
}

// Slot is a bookable start instant; its end is Start + event length
type Slot struct {
	Start time.Time
}

// End returns the end of the slot for the given event length
func (s Slot) End(eventLength time.Duration) time.Time {
	return s.Start.Add(eventLength)
}
