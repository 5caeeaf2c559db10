// Package slots обходит свободные интервалы и выдаёт старты слотов
// с фиксированным шагом, выровненные по круглым значениям часов.
package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rangeset"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// alignmentIntervals сетки выравнивания стартов, от наиболее предпочтительной
var alignmentIntervals = []int{60, 30, 20, 15, 10, 5}

// Params параметры генерации слотов, длительности в минутах
type Params struct {
	EventLength                 int
	Cadence                     int
	MinimumBookingNoticeMinutes int
	OffsetStart                 int       // Сдвиг каждого старта, 0 - без сдвига
	Now                         time.Time // Точка отсчёта для минимального времени до бронирования
	Zone                        tz.Zone   // Зона, в которой выравниваются и выражаются старты
}

// AlignmentInterval возвращает первую сетку из {60,30,20,15,10,5},
// на которую делится cadence, или 1, если таких нет
func AlignmentInterval(cadence int) int {
	for _, candidate := range alignmentIntervals {
		if cadence%candidate == 0 {
			return candidate
		}
	}
	return 1
}

// Generate выдаёт слоты по интервалам в порядке их начала.
//
// Каждый слот начинается не раньше Now + MinimumBookingNoticeMinutes и заканчивается
// внутри интервала, из которого получен. Старты уникальны, даже если интервалы
// перекрываются или примыкают друг к другу
func Generate(intervals []domain.TimeInterval, p Params) []domain.Slot {
	cadence := atLeastOne(p.Cadence)
	eventLength := time.Duration(atLeastOne(p.EventLength)) * time.Minute
	offset := 0
	if p.OffsetStart != 0 {
		offset = atLeastOne(p.OffsetStart)
	}
	zone := p.Zone
	if zone == nil {
		zone = tz.UTC()
	}

	alignment := AlignmentInterval(cadence)
	step := time.Duration(cadence+offset) * time.Minute
	earliest := p.Now.Add(time.Duration(p.MinimumBookingNoticeMinutes) * time.Minute)

	g := &generator{
		emitted: make(map[int64]struct{}),
		slots:   make([]domain.Slot, 0),
	}

	for _, iv := range rangeset.Normalize(intervals) {
		start := iv.Start
		if earliest.After(start) {
			start = earliest
		}
		start = zone.WallClock(ceilMinute(start))

		if start.Minute()%alignment != 0 {
			start = align(start, iv.End, cadence, alignment)
		}
		start = start.Add(time.Duration(offset) * time.Minute)

		// Стык с предыдущими интервалами: не даем слоту наложиться на уже выданный
		if boundary, ok := g.latestBoundaryBefore(start); ok {
			next := boundary.Add(step)
			if next.After(start) {
				if !boundary.Before(iv.Start) {
					start = zone.WallClock(boundary)
				} else {
					start = zone.WallClock(next)
				}
			}
		}

		for !start.Add(eventLength).Add(-time.Second).After(iv.End) {
			g.emit(start)
			start = start.Add(step)
		}
	}

	return g.slots
}

// align сдвигает start вперёд на более круглую границу, выбирая вариант,
// при котором в остатке интервала не теряется слот: граница шага,
// затем четверть часа, затем 5 минут, иначе ближайшее кратное alignment от начала часа
func align(start, end time.Time, cadence, alignment int) time.Time {
	minute := start.Minute()
	remaining := int(end.Sub(start) / time.Minute)
	if remaining < 0 {
		remaining = 0
	}
	extra := remaining % cadence

	toCadence := minutesToNext(minute, cadence)
	toQuarter := minutesToNext(minute, 15)
	toFive := minutesToNext(minute, 5)

	switch {
	case extra >= toCadence:
		return start.Add(time.Duration(toCadence) * time.Minute)
	case extra >= toQuarter:
		return start.Add(time.Duration(toQuarter) * time.Minute)
	case extra >= toFive:
		return start.Add(time.Duration(toFive) * time.Minute)
	}

	topOfHour := start.Add(-time.Duration(minute) * time.Minute)
	steps := (minute + alignment - 1) / alignment
	return topOfHour.Add(time.Duration(steps*alignment) * time.Minute)
}

func minutesToNext(minute, grid int) int {
	return (grid - minute%grid) % grid
}

type generator struct {
	emitted    map[int64]struct{}
	boundaries []time.Time // отсортированы по возрастанию
	slots      []domain.Slot
}

func (g *generator) emit(start time.Time) {
	key := start.Unix()
	if _, seen := g.emitted[key]; seen {
		return
	}
	g.emitted[key] = struct{}{}
	g.slots = append(g.slots, domain.Slot{Start: start})

	idx := sort.Search(len(g.boundaries), func(i int) bool {
		return !g.boundaries[i].Before(start)
	})
	g.boundaries = append(g.boundaries, time.Time{})
	copy(g.boundaries[idx+1:], g.boundaries[idx:])
	g.boundaries[idx] = start
}

// latestBoundaryBefore возвращает наибольший выданный старт строго раньше t
func (g *generator) latestBoundaryBefore(t time.Time) (time.Time, bool) {
	idx := sort.Search(len(g.boundaries), func(i int) bool {
		return !g.boundaries[i].Before(t)
	})
	if idx == 0 {
		return time.Time{}, false
	}
	return g.boundaries[idx-1], true
}

// ceilMinute отбрасывает секунды, округляя вверх до целой минуты
func ceilMinute(t time.Time) time.Time {
	truncated := t.Truncate(time.Minute)
	if truncated.Before(t) {
		return truncated.Add(time.Minute)
	}
	return truncated
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
