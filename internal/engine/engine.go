// Package engine собирает развёртку расписания, алгебру интервалов и генерацию
// слотов в запросы доступности.
//
// Движок - чистая функция входных данных: без I/O, без состояния между вызовами
// и без ошибок. Вырожденный вход даёт пустой результат.
package engine

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rangeset"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}

// Engine движок расчёта доступности, безопасен для конкурентного использования
type Engine struct {
	clock Clock
}

// New создает движок, берущий текущее время из clock
func New(clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{clock: clock}
}

// Result результат запроса доступности
type Result struct {
	Slots     []domain.Slot         // Старты слотов в таймзоне отображения
	Intervals []domain.TimeInterval // Свободное время после вычета занятости, по возрастанию
}

// Participant участник совместного бронирования со своим расписанием и занятостью
type Participant struct {
	Schedule *domain.Schedule
	Busy     []domain.BusyInterval
}

// ComputeAvailability строит свободные интервалы q.Schedule на [q.From, q.To),
// вычитает занятость и генерирует слоты по остатку
func (e *Engine) ComputeAvailability(q domain.AvailabilityQuery, busy []domain.BusyInterval) Result {
	free := e.FreeIntervals(q.Schedule, domain.TimeInterval{Start: q.From, End: q.To}, busy)
	return e.slotsFor(q, free, q.Schedule)
}

// ComputeCollectiveAvailability возвращает слоты, свободные у всех участников.
// Расписание из q не используется, у каждого участника своё.
// Без DisplayTimeZone слоты выражаются в таймзоне первого участника
func (e *Engine) ComputeCollectiveAvailability(q domain.AvailabilityQuery, participants []Participant) Result {
	if len(participants) == 0 {
		return emptyResult()
	}

	window := domain.TimeInterval{Start: q.From, End: q.To}
	lists := make([][]domain.TimeInterval, 0, len(participants))
	for _, p := range participants {
		lists = append(lists, e.FreeIntervals(p.Schedule, window, p.Busy))
	}

	return e.slotsFor(q, rangeset.Intersect(lists...), participants[0].Schedule)
}

// IsSlotAvailable проверяет, что candidate целиком лежит в свободном времени s
// в свои календарные дни с учётом занятости
func (e *Engine) IsSlotAvailable(candidate domain.TimeInterval, s *domain.Schedule, busy []domain.BusyInterval) bool {
	if !candidate.IsValid() || s == nil {
		return false
	}

	zone := tz.LoadOrUTC(s.TimeZone)
	window := domain.TimeInterval{
		Start: tz.StartOfDay(zone, candidate.Start),
		End:   zone.Instant(tz.DateOf(zone, candidate.End).AddDays(1), 0),
	}

	for _, iv := range e.FreeIntervals(s, window, busy) {
		if iv.Contains(candidate) {
			return true
		}
	}
	return false
}

// FreeIntervals разворачивает расписание на окно: правила и переопределения
// сливаются по календарной дате (переопределение заменяет правила своей даты),
// цепочки интервалов склеиваются, занятость вычитается
func (e *Engine) FreeIntervals(s *domain.Schedule, window domain.TimeInterval, busy []domain.BusyInterval) []domain.TimeInterval {
	if s == nil || !window.IsValid() {
		return []domain.TimeInterval{}
	}

	zone := tz.LoadOrUTC(s.TimeZone)

	recurring := rangeset.GroupByDate(schedule.ExpandRules(s.Rules(), window, zone), zone)
	overrides := rangeset.GroupByDate(schedule.ResolveOverrides(s.Overrides(), window, zone), zone)

	available := rangeset.Coalesce(rangeset.Merge(recurring, overrides))
	free := rangeset.Subtract(available, rangeset.Clamp(busyToIntervals(busy), window))
	rangeset.Sort(free)
	return free
}

func (e *Engine) slotsFor(q domain.AvailabilityQuery, free []domain.TimeInterval, owner *domain.Schedule) Result {
	displayName := q.DisplayTimeZone
	if displayName == "" && owner != nil {
		displayName = owner.TimeZone
	}
	display := tz.LoadOrUTC(displayName)

	generated := slots.Generate(free, slots.Params{
		EventLength:                 q.EventLengthMinutes,
		Cadence:                     cadenceOrLength(q),
		MinimumBookingNoticeMinutes: q.MinimumBookingNoticeMinutes,
		OffsetStart:                 q.OffsetStartMinutes,
		Now:                         e.clock.Now(),
		Zone:                        display,
	})

	intervals := make([]domain.TimeInterval, len(free))
	for i, iv := range free {
		intervals[i] = iv.In(display.Location())
	}

	return Result{Slots: generated, Intervals: intervals}
}

// cadenceOrLength без заданного шага использует длительность события
func cadenceOrLength(q domain.AvailabilityQuery) int {
	if q.CadenceMinutes > 0 {
		return q.CadenceMinutes
	}
	return q.EventLengthMinutes
}

// BusyIntervalsFromBookings превращает бронирования, которые занимают время, в занятые интервалы.
// Отменённые, отклонённые и прочие неактивные бронирования пропускаются
func BusyIntervalsFromBookings(bookings []*domain.Booking) []domain.BusyInterval {
	busy := make([]domain.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		busy = append(busy, domain.BusyInterval{
			TimeInterval: b.Interval(),
			Source:       domain.BusySourceBooking,
		})
	}
	return busy
}

func busyToIntervals(busy []domain.BusyInterval) []domain.TimeInterval {
	out := make([]domain.TimeInterval, len(busy))
	for i, b := range busy {
		out[i] = b.TimeInterval
	}
	return out
}

func emptyResult() Result {
	return Result{Slots: []domain.Slot{}, Intervals: []domain.TimeInterval{}}
}
