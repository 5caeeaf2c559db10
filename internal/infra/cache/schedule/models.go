package schedule

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// cachedSchedule представление расписания в Redis
type cachedSchedule struct {
	ID       int64         `json:"id"`
	OwnerID  int64         `json:"owner_id"`
	Name     string        `json:"name"`
	TimeZone string        `json:"time_zone"`
	Entries  []cachedEntry `json:"entries"`
}

type cachedEntry struct {
	ID        int64            `json:"id"`
	Kind      domain.EntryKind `json:"kind"`
	Days      []time.Weekday   `json:"days,omitempty"`
	Date      *time.Time       `json:"date,omitempty"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}

func toCached(s *domain.Schedule) cachedSchedule {
	c := cachedSchedule{
		ID:       s.ID,
		OwnerID:  s.OwnerID,
		Name:     s.Name,
		TimeZone: s.TimeZone,
		Entries:  make([]cachedEntry, 0, len(s.Entries)),
	}

	for _, e := range s.Entries {
		switch {
		case e.Kind == domain.EntryKindRecurring && e.Rule != nil:
			c.Entries = append(c.Entries, cachedEntry{
				ID:        e.ID,
				Kind:      e.Kind,
				Days:      e.Rule.Days,
				StartTime: e.Rule.StartTime,
				EndTime:   e.Rule.EndTime,
			})
		case e.Kind == domain.EntryKindOverride && e.Override != nil:
			date := e.Override.Date
			c.Entries = append(c.Entries, cachedEntry{
				ID:        e.ID,
				Kind:      e.Kind,
				Date:      &date,
				StartTime: e.Override.StartTime,
				EndTime:   e.Override.EndTime,
			})
		}
	}

	return c
}

func (c cachedSchedule) toDomain() *domain.Schedule {
	s := &domain.Schedule{
		ID:       c.ID,
		OwnerID:  c.OwnerID,
		Name:     c.Name,
		TimeZone: c.TimeZone,
		Entries:  make([]domain.ScheduleEntry, 0, len(c.Entries)),
	}

	for _, e := range c.Entries {
		var entry domain.ScheduleEntry
		switch {
		case e.Kind == domain.EntryKindOverride && e.Date != nil:
			entry = domain.NewOverrideEntry(domain.DateOverride{
				Date:      e.Date.UTC(),
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
			})
		case e.Kind == domain.EntryKindRecurring:
			entry = domain.NewRuleEntry(domain.WorkingHoursRule{
				Days:      e.Days,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
			})
		default:
			continue
		}
		entry.ID = e.ID
		s.Entries = append(s.Entries, entry)
	}

	return s
}
