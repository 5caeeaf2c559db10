package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var allWeek = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

func rule(days []time.Weekday, start, end string) domain.WorkingHoursRule {
	return domain.WorkingHoursRule{
		Days:      days,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func mustZone(t *testing.T, name string) tz.Zone {
	t.Helper()
	z, err := tz.Load(name)
	require.NoError(t, err)
	return z
}

func TestExpandRule_WeekdaysOnly(t *testing.T) {
	zone := tz.UTC()
	// понедельник 2025-03-03 .. понедельник 2025-03-10
	window := domain.TimeInterval{
		Start: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	got := ExpandRule(rule(weekdays, "09:00", "17:00"), window, zone)

	require.Len(t, got, 5)
	for i, iv := range got {
		assert.Equal(t, time.Date(2025, 3, 3+i, 9, 0, 0, 0, time.UTC), iv.Start.UTC())
		assert.Equal(t, 8*time.Hour, iv.Duration())
	}
}

func TestExpandRule_PreservesWallClockAcrossDST(t *testing.T) {
	tests := []struct {
		name      string
		zone      string
		firstDay  time.Time
		totalDays int
	}{
		{
			name:      "spring forward new york",
			zone:      "America/New_York",
			firstDay:  time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			totalDays: 5,
		},
		{
			name:      "fall back berlin",
			zone:      "Europe/Berlin",
			firstDay:  time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC),
			totalDays: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := mustZone(t, tt.zone)
			y, m, d := tt.firstDay.Date()
			window := domain.TimeInterval{
				Start: time.Date(y, m, d, 0, 0, 0, 0, zone.Location()),
				End:   time.Date(y, m, d+tt.totalDays, 0, 0, 0, 0, zone.Location()),
			}

			got := ExpandRule(rule(allWeek, "09:00", "17:00"), window, zone)

			require.Len(t, got, tt.totalDays)
			offsets := make(map[int]bool)
			for _, iv := range got {
				start := zone.WallClock(iv.Start)
				end := zone.WallClock(iv.End)
				assert.Equal(t, "09:00", start.Format(domain.TimeFormat), "start of %s", iv)
				assert.Equal(t, "17:00", end.Format(domain.TimeFormat), "end of %s", iv)
				offsets[tz.OffsetSeconds(zone, iv.Start)] = true
			}
			assert.Len(t, offsets, 2, "window must span the transition")
		})
	}
}

func TestExpandRule_TransitionDayItself(t *testing.T) {
	zone := mustZone(t, "America/New_York")
	// 2025-03-09: день перевода часов (02:00 EST -> 03:00 EDT)
	midnight := time.Date(2025, 3, 9, 0, 0, 0, 0, zone.Location())
	window := domain.TimeInterval{Start: midnight, End: midnight.Add(24 * time.Hour)}

	got := ExpandRule(rule([]time.Weekday{time.Sunday}, "09:00", "17:00"), window, zone)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 3, 9, 13, 0, 0, 0, time.UTC), got[0].Start.UTC())
	assert.Equal(t, time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC), got[0].End.UTC())
}

func TestExpandRule_DayWithoutLocalMidnight(t *testing.T) {
	tests := []struct {
		name      string
		zone      string
		day       tz.Date
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			// 2025-09-07: в 00:00 (-04) часы переводятся на 01:00 (-03)
			name:      "santiago working hours",
			zone:      "America/Santiago",
			day:       tz.Date{Year: 2025, Month: time.September, Day: 7},
			start:     "09:00",
			end:       "17:00",
			wantStart: time.Date(2025, 9, 7, 12, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 9, 7, 20, 0, 0, 0, time.UTC),
		},
		{
			// 2018-11-04: в 00:00 (-03) часы переводятся на 01:00 (-02)
			name:      "sao paulo from midnight",
			zone:      "America/Sao_Paulo",
			day:       tz.Date{Year: 2018, Month: time.November, Day: 4},
			start:     "00:00",
			end:       "12:00",
			wantStart: time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 11, 4, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := mustZone(t, tt.zone)
			window := domain.TimeInterval{
				Start: zone.Instant(tt.day.AddDays(-1), 12*60),
				End:   zone.Instant(tt.day.AddDays(1), 0),
			}

			got := ExpandRule(rule([]time.Weekday{time.Sunday}, tt.start, tt.end), window, zone)

			require.Len(t, got, 1)
			assert.Equal(t, tt.wantStart, got[0].Start.UTC())
			assert.Equal(t, tt.wantEnd, got[0].End.UTC())
			assert.Equal(t, tt.day.String(), tz.DateKey(zone, got[0].Start))
			assert.Equal(t, tt.end, zone.WallClock(got[0].End).Format(domain.TimeFormat))
		})
	}
}

func TestExpandRule_EndOfDayMeansMidnight(t *testing.T) {
	zone := mustZone(t, "Europe/Moscow")
	window := domain.TimeInterval{
		Start: time.Date(2025, 3, 2, 21, 0, 0, 0, time.UTC), // 2025-03-03 00:00 MSK
		End:   time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC), // 2025-03-04 00:00 MSK
	}

	got := ExpandRule(rule([]time.Weekday{time.Monday}, "18:00", "23:59"), window, zone)

	require.Len(t, got, 1)
	assert.Equal(t, window.End, got[0].End.UTC())
}

func TestExpandRule_ClampsToWindowAndDropsEmpty(t *testing.T) {
	zone := tz.UTC()
	window := domain.TimeInterval{
		Start: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	}

	got := ExpandRule(rule(weekdays, "09:00", "17:00"), window, zone)

	require.Len(t, got, 2)
	assert.Equal(t, window.Start, got[0].Start)
	assert.Equal(t, time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, window.End, got[1].End)

	inverted := ExpandRule(rule(weekdays, "17:00", "09:00"), window, zone)
	assert.Empty(t, inverted)
}

func TestResolveOverride(t *testing.T) {
	zone := mustZone(t, "America/New_York")
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	got := ResolveOverride(domain.DateOverride{
		Date:      date,
		StartTime: types.MustTimeString("12:00"),
		EndTime:   types.MustTimeString("13:00"),
	}, zone)

	// 12:00 EST == 17:00 UTC, дата сохраняется, а не момент времени
	assert.Equal(t, time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC), got.Start.UTC())
	assert.Equal(t, time.Hour, got.Duration())
	assert.Equal(t, "2025-03-03", tz.DateKey(zone, got.Start))
}

func TestResolveOverride_EndOfDay(t *testing.T) {
	zone := mustZone(t, "Europe/Berlin")
	date := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)

	got := ResolveOverride(domain.DateOverride{
		Date:      date,
		StartTime: types.MustTimeString("00:00"),
		EndTime:   types.MustTimeString("23:59"),
	}, zone)

	// день перевода часов назад длится 25 часов
	assert.Equal(t, 25*time.Hour, got.Duration())
	assert.Equal(t, "00:00", zone.WallClock(got.End).Format(domain.TimeFormat))
}

func TestResolveOverride_DayWithoutLocalMidnight(t *testing.T) {
	zone := mustZone(t, "America/Santiago")

	closed := ResolveOverride(domain.DateOverride{
		Date:      time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("00:00"),
		EndTime:   types.MustTimeString("00:00"),
	}, zone)

	// сутки начинаются в 01:00 -03, а не в 23:00 предыдущего дня
	assert.Equal(t, time.Date(2025, 9, 7, 4, 0, 0, 0, time.UTC), closed.Start.UTC())
	assert.Equal(t, "2025-09-07", tz.DateKey(zone, closed.Start))
	assert.False(t, closed.IsValid())

	wholeDay := ResolveOverride(domain.DateOverride{
		Date:      time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("00:00"),
		EndTime:   types.MustTimeString("23:59"),
	}, zone)

	assert.Equal(t, 23*time.Hour, wholeDay.Duration())
}

func TestResolveOverrides_FiltersByWindowAndKeepsEmpty(t *testing.T) {
	zone := tz.UTC()
	window := domain.TimeInterval{
		Start: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	overrides := []domain.DateOverride{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), StartTime: types.MustTimeString("00:00"), EndTime: types.MustTimeString("00:00")},
		{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00")},
	}

	got := ResolveOverrides(overrides, window, zone)

	require.Len(t, got, 1)
	assert.False(t, got[0].IsValid())
	assert.Equal(t, window.Start, got[0].Start)
}
