package check_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс источника расписаний (репозиторий или кеш)
type ScheduleRepository interface {
	GetByID(ctx context.Context, scheduleID int64) (*domain.Schedule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByOwnerInWindow(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CalendarServiceClient интерфейс клиента для CalendarService
type CalendarServiceClient interface {
	GetBusyIntervalsWithGracefulDegradation(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.BusyInterval, error)
}

// AvailabilityEngine интерфейс движка расчёта доступности
type AvailabilityEngine interface {
	IsSlotAvailable(candidate domain.TimeInterval, s *domain.Schedule, busy []domain.BusyInterval) bool
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncAvailabilityCheck(available bool)
	IncCalendarDegraded(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
