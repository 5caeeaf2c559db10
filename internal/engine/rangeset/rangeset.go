// Package rangeset операции над списками временных интервалов:
// группировка по календарной дате, слияние с переопределениями по дате,
// пересечение и вычитание.
//
// Входные срезы не изменяются. Пустые и перевёрнутые интервалы
// отбрасываются во всех результатах, кроме корзин GroupByDate.
package rangeset

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// DateBuckets интервалы, сгруппированные по ключу даты начала YYYY-MM-DD
type DateBuckets map[string][]domain.TimeInterval

// GroupByDate группирует интервалы по дате их начала в зоне.
// Интервалы нулевой длины сохраняются: пустое переопределение всё равно занимает свою дату
func GroupByDate(intervals []domain.TimeInterval, zone tz.Zone) DateBuckets {
	buckets := make(DateBuckets)
	for _, iv := range intervals {
		key := tz.DateKey(zone, iv.Start)
		buckets[key] = append(buckets[key], iv)
	}
	return buckets
}

// Merge объединяет корзины правил и переопределений. Для каждой даты из overrides
// корзина переопределений целиком заменяет корзину правил.
// Результат плоский, без пустых интервалов, отсортирован по началу
func Merge(recurring, overrides DateBuckets) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0)

	for key, ivs := range recurring {
		if _, overridden := overrides[key]; overridden {
			continue
		}
		result = appendValid(result, ivs...)
	}
	for _, ivs := range overrides {
		result = appendValid(result, ivs...)
	}

	Sort(result)
	return result
}

// Intersect возвращает время, покрытое каждым из списков.
// Списки пересекаются попарно с накопленным результатом,
// пустой промежуточный результат завершает вычисление
func Intersect(lists ...[]domain.TimeInterval) []domain.TimeInterval {
	if len(lists) == 0 {
		return []domain.TimeInterval{}
	}

	result := Normalize(lists[0])
	for _, next := range lists[1:] {
		if len(result) == 0 {
			break
		}
		result = intersectPair(result, Normalize(next))
	}
	return result
}

func intersectPair(a, b []domain.TimeInterval) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0)
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		start := maxTime(a[i].Start, b[j].Start)
		end := minTime(a[i].End, b[j].End)
		if start.Before(end) {
			result = append(result, domain.TimeInterval{Start: start, End: end})
		}

		// Сдвигаем тот интервал, который заканчивается раньше
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return result
}

// Subtract вычитает исключаемые интервалы из каждого исходного.
// Порядок исходных интервалов сохраняется, куски одного интервала идут по возрастанию
func Subtract(source, excluded []domain.TimeInterval) []domain.TimeInterval {
	excl := Normalize(excluded)
	result := make([]domain.TimeInterval, 0, len(source))

	for _, src := range source {
		if !src.IsValid() {
			continue
		}

		cursor := src.Start
		for _, e := range excl {
			if !e.End.After(cursor) {
				continue
			}
			if !e.Start.Before(src.End) {
				break
			}
			if e.Start.After(cursor) {
				result = append(result, domain.TimeInterval{Start: cursor, End: e.Start})
			}
			if e.End.After(cursor) {
				cursor = e.End
			}
		}

		if cursor.Before(src.End) {
			result = append(result, domain.TimeInterval{Start: cursor, End: src.End})
		}
	}
	return result
}

// Coalesce склеивает интервалы, идущие цепочкой конец-в-начало.
// Вход должен быть отсортирован по началу. Перекрывающиеся интервалы не трогаются
func Coalesce(intervals []domain.TimeInterval) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0, len(intervals))
	// индекс интервала по его концу, чтобы цепочки склеивались за один проход
	byEnd := make(map[int64]int, len(intervals))

	for _, iv := range intervals {
		if !iv.IsValid() {
			continue
		}
		if idx, ok := byEnd[iv.Start.UnixNano()]; ok {
			prev := result[idx]
			delete(byEnd, prev.End.UnixNano())
			result[idx].End = iv.End
			byEnd[iv.End.UnixNano()] = idx
			continue
		}
		result = append(result, iv)
		byEnd[iv.End.UnixNano()] = len(result) - 1
	}
	return result
}

// Normalize возвращает отсортированную копию без пустых и перевёрнутых интервалов
func Normalize(intervals []domain.TimeInterval) []domain.TimeInterval {
	result := appendValid(make([]domain.TimeInterval, 0, len(intervals)), intervals...)
	Sort(result)
	return result
}

// Sort сортирует интервалы на месте по началу, затем по концу
func Sort(intervals []domain.TimeInterval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})
}

// Clamp обрезает интервалы окном, отбрасывая то, что вне него
func Clamp(intervals []domain.TimeInterval, window domain.TimeInterval) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		clamped := domain.TimeInterval{
			Start: maxTime(iv.Start, window.Start),
			End:   minTime(iv.End, window.End),
		}
		if clamped.IsValid() {
			result = append(result, clamped)
		}
	}
	return result
}

func appendValid(dst []domain.TimeInterval, intervals ...domain.TimeInterval) []domain.TimeInterval {
	for _, iv := range intervals {
		if iv.IsValid() {
			dst = append(dst, iv)
		}
	}
	return dst
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
