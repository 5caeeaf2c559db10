package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// EntryKind distinguishes the two kinds of schedule entries
type EntryKind string

const (
	EntryKindRecurring EntryKind = "recurring"
	EntryKindOverride  EntryKind = "override"
)

// WorkingHoursRule is a recurring weekly availability definition.
// StartTime and EndTime are wall-clock times in the schedule's timezone.
type WorkingHoursRule struct {
	Days      []time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// HasDay reports whether the rule applies on the given weekday
func (r *WorkingHoursRule) HasDay(day time.Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// DateOverride is one-off availability for a single calendar date.
// Date is the calendar date at UTC midnight; for that date it fully replaces recurring rules.
type DateOverride struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ScheduleEntry is a tagged union of WorkingHoursRule and DateOverride.
// Exactly one of Rule/Override is set, according to Kind.
type ScheduleEntry struct {
	ID       int64
	Kind     EntryKind
	Rule     *WorkingHoursRule
	Override *DateOverride
}

// NewRuleEntry wraps a recurring rule
func NewRuleEntry(rule WorkingHoursRule) ScheduleEntry {
	return ScheduleEntry{Kind: EntryKindRecurring, Rule: &rule}
}

// NewOverrideEntry wraps a date override
func NewOverrideEntry(override DateOverride) ScheduleEntry {
	return ScheduleEntry{Kind: EntryKindOverride, Override: &override}
}

// Schedule is an owner's availability definition
type Schedule struct {
	ID       int64
	OwnerID  int64
	Name     string
	TimeZone string // IANA zone name, e.g. "Europe/Moscow"
	Entries  []ScheduleEntry
}

// Rules returns the recurring entries in declaration order
func (s *Schedule) Rules() []WorkingHoursRule {
	rules := make([]WorkingHoursRule, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Kind == EntryKindRecurring && e.Rule != nil {
			rules = append(rules, *e.Rule)
		}
	}
	return rules
}

// Overrides returns the date overrides in declaration order
func (s *Schedule) Overrides() []DateOverride {
	overrides := make([]DateOverride, 0)
	for _, e := range s.Entries {
		if e.Kind == EntryKindOverride && e.Override != nil {
			overrides = append(overrides, *e.Override)
		}
	}
	return overrides
}

// AvailabilityQuery is the input of a slot computation.
// All durations are in minutes.
type AvailabilityQuery struct {
	Schedule                    *Schedule
	From                        time.Time
	To                          time.Time
	EventLengthMinutes          int
	CadenceMinutes              int
	MinimumBookingNoticeMinutes int
	OffsetStartMinutes          int
	DisplayTimeZone             string // empty = schedule timezone
}
