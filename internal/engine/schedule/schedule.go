// Package schedule разворачивает еженедельные правила рабочего времени
// и переопределения на дату в конкретные интервалы в таймзоне расписания.
package schedule

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// ExpandRule создает по одному интервалу на каждый день окна, день недели
// которого (в зоне) указан в правиле.
//
// Каждая граница переводится в момент как показание часов на своей дате,
// поэтому "09:00" остаётся 09:00 и в день перевода часов, и в зонах,
// где в этот день не существует полночи. Результат обрезается окном,
// пустые дни отбрасываются
func ExpandRule(rule domain.WorkingHoursRule, window domain.TimeInterval, zone tz.Zone) []domain.TimeInterval {
	if !window.IsValid() {
		return []domain.TimeInterval{}
	}

	first := tz.DateOf(zone, window.Start)
	last := tz.DateOf(zone, window.End)
	result := make([]domain.TimeInterval, 0)

	for date := first; !date.After(last); date = date.AddDays(1) {
		if !rule.HasDay(date.Weekday()) {
			continue
		}

		start := zone.Instant(date, rule.StartTime.Minutes())
		end := zone.Instant(date, rule.EndTime.Minutes())

		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		// 23:59 означает "до конца дня"
		if isEndOfDay(zone, end) {
			end = end.Add(time.Minute)
		}
		if !end.After(start) {
			continue
		}

		result = append(result, domain.TimeInterval{Start: start, End: end})
	}
	return result
}

// ExpandRules разворачивает все правила в порядке их объявления
func ExpandRules(rules []domain.WorkingHoursRule, window domain.TimeInterval, zone tz.Zone) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0)
	for _, rule := range rules {
		result = append(result, ExpandRule(rule, window, zone)...)
	}
	return result
}

func isEndOfDay(zone tz.Zone, t time.Time) bool {
	wc := zone.WallClock(t)
	return wc.Hour() == 23 && wc.Minute() == 59 && wc.Second() == 0 && wc.Nanosecond() == 0
}

// ResolveOverride превращает переопределение в ровно один интервал на его дату.
// Дата читается как календарная дата в UTC и переносится на ту же дату в зоне
// (сохраняется дата, а не момент). Конец 23:59 означает следующую полночь в зоне.
// Интервал может быть пустым: 00:00-00:00 закрывает весь день
func ResolveOverride(override domain.DateOverride, zone tz.Zone) domain.TimeInterval {
	date := tz.DateFromTime(override.Date.UTC())

	start := zone.Instant(date, override.StartTime.Minutes())
	var end time.Time
	if override.EndTime.IsEndOfDay() {
		end = zone.Instant(date.AddDays(1), 0)
	} else {
		end = zone.Instant(date, override.EndTime.Minutes())
	}

	if end.Before(start) {
		end = start
	}
	return domain.TimeInterval{Start: start, End: end}
}

// ResolveOverrides разрешает переопределения, дата которых попадает в окно,
// и обрезает их окном. Пустые интервалы сохраняются: они всё равно
// закрывают свою дату для еженедельных правил
func ResolveOverrides(overrides []domain.DateOverride, window domain.TimeInterval, zone tz.Zone) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0, len(overrides))
	if !window.IsValid() {
		return result
	}

	first := tz.DateOf(zone, window.Start)
	last := tz.DateOf(zone, window.End)

	for _, o := range overrides {
		date := tz.DateFromTime(o.Date.UTC())
		if first.After(date) || date.After(last) {
			continue
		}

		iv := ResolveOverride(o, zone)
		if iv.Start.Before(window.Start) {
			iv.Start = window.Start
		}
		if iv.End.After(window.End) {
			iv.End = window.End
		}
		if iv.End.Before(iv.Start) {
			iv.End = iv.Start
		}
		result = append(result, iv)
	}
	return result
}
