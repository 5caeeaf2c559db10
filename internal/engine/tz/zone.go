// Package tz скрывает арифметику таймзон за узким интерфейсом,
// чтобы алгебра интервалов и генерация слотов не работали с *time.Location напрямую.
package tz

import (
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Zone переводит абсолютные моменты в показания часов одной таймзоны и обратно
type Zone interface {
	// Name возвращает IANA имя зоны
	Name() string
	// Location возвращает *time.Location, только для форматирования
	Location() *time.Location
	// WallClock возвращает момент instant, выраженный в зоне
	WallClock(instant time.Time) time.Time
	// Instant переводит показание minuteOfDay на дату date в абсолютный момент.
	// minuteOfDay может выходить за сутки, дата переносится.
	// Показание из пропуска перевода часов сдвигается вперёд на величину пропуска
	Instant(date Date, minuteOfDay int) time.Time
	// Weekday возвращает день недели момента instant в зоне
	Weekday(instant time.Time) time.Weekday
}

type locationZone struct {
	loc *time.Location
}

// Load загружает зону по IANA имени
func Load(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return locationZone{loc: loc}, nil
}

// LoadOrUTC загружает зону, для пустого или неизвестного имени возвращает UTC.
// Движок не падает на входных данных, имена зон проверяются выше
func LoadOrUTC(name string) Zone {
	if name == "" {
		return UTC()
	}
	z, err := Load(name)
	if err != nil {
		return UTC()
	}
	return z
}

// UTC возвращает зону UTC
func UTC() Zone {
	return locationZone{loc: time.UTC}
}

// IsValid проверяет, что name - загружаемая IANA зона
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func (z locationZone) Name() string { return z.loc.String() }

func (z locationZone) Location() *time.Location { return z.loc }

func (z locationZone) WallClock(instant time.Time) time.Time { return instant.In(z.loc) }

func (z locationZone) Instant(date Date, minuteOfDay int) time.Time {
	t := time.Date(date.Year, date.Month, date.Day, 0, minuteOfDay, 0, 0, z.loc)
	wall := time.Date(date.Year, date.Month, date.Day, 0, minuteOfDay, 0, 0, time.UTC)
	if sameWallClock(t, wall) {
		return t
	}

	// Показание попало в пропуск: time.Date отдаёт момент до перехода
	// (в America/Santiago полночь превращается в 23:00 предыдущего дня).
	// Берём смещение до перехода, это сдвигает показание вперёд
	_, before := t.Zone()
	return wall.Add(-time.Duration(before) * time.Second).In(z.loc)
}

func sameWallClock(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && t.Hour() == wall.Hour() && t.Minute() == wall.Minute()
}

func (z locationZone) Weekday(instant time.Time) time.Weekday {
	return instant.In(z.loc).Weekday()
}

// OffsetSeconds возвращает смещение от UTC в зоне z в момент instant
func OffsetSeconds(z Zone, instant time.Time) int {
	_, offset := z.WallClock(instant).Zone()
	return offset
}

// DateOf возвращает календарную дату момента instant в зоне
func DateOf(z Zone, instant time.Time) Date {
	return DateFromTime(z.WallClock(instant))
}

// StartOfDay возвращает начало суток в зоне для даты момента instant
func StartOfDay(z Zone, instant time.Time) time.Time {
	return z.Instant(DateOf(z, instant), 0)
}

// DateKey возвращает ключ YYYY-MM-DD даты момента instant в зоне
func DateKey(z Zone, instant time.Time) string {
	return DateOf(z, instant).String()
}

// Date календарная дата без таймзоны
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateFromTime берёт календарную дату t в его собственной зоне
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays возвращает дату через n дней
func (d Date) AddDays(n int) Date {
	return DateFromTime(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday возвращает день недели даты
func (d Date) Weekday() time.Weekday {
	return d.utcMidnight().Weekday()
}

// After проверяет, что d позже other
func (d Date) After(other Date) bool {
	return d.utcMidnight().After(other.utcMidnight())
}

func (d Date) utcMidnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.utcMidnight().Format(domain.DateFormat)
}
