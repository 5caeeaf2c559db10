package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidTimeString значение не является временем суток HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// endOfDayInputs значения конца суток, которые отдаёт PostgreSQL TIME
var endOfDayInputs = map[string]bool{
	"24:00":    true,
	"24:00:00": true,
}

// TimeString время суток (HH:MM) без привязки к смещению от UTC.
// Хранится как количество минут от полуночи
type TimeString struct {
	minutes int
}

// NewTimeString берёт показание часов t в его собственной зоне
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// MustTimeString как NewTimeStringFromString, но паникует на ошибке (для тестов и констант)
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS" (секунды отбрасываются).
// "24:00" приводится к 23:59, которое расписания читают как "до конца дня"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if endOfDayInputs[s] {
		return TimeString{minutes: MinutesPerDay - 1}, nil
	}

	layouts := []string{"15:04", "15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

func (t TimeString) Hour() int { return t.minutes / 60 }

func (t TimeString) Minute() int { return t.minutes % 60 }

// Minutes количество минут от полуночи
func (t TimeString) Minutes() int { return t.minutes }

// IsEndOfDay проверяет, что t равно 23:59, то есть "до конца дня"
func (t TimeString) IsEndOfDay() bool {
	return t.minutes == MinutesPerDay-1
}

// String форматирует как HH:MM
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeString) UnmarshalText(b []byte) error {
	parsed, err := NewTimeStringFromString(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan реализует sql.Scanner для колонок PostgreSQL TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.UnmarshalText(v)
	case string:
		return t.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}
