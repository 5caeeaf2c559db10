package get_collective_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
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

// AvailabilityEngine интерфейс движка расчёта совместной доступности
type AvailabilityEngine interface {
	ComputeCollectiveAvailability(q domain.AvailabilityQuery, participants []engine.Participant) engine.Result
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveSlots(count int)
	IncCalendarDegraded(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
