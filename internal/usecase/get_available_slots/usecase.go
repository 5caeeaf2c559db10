package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

const operation = "get_available_slots"

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	scheduleRepo   ScheduleRepository
	bookingRepo    BookingRepository
	calendarClient CalendarServiceClient
	engine         AvailabilityEngine
	metrics        Metrics
	defaults       Defaults
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	calendarClient CalendarServiceClient,
	engine AvailabilityEngine,
	metrics Metrics,
	defaults Defaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		bookingRepo:    bookingRepo,
		calendarClient: calendarClient,
		engine:         engine,
		metrics:        metrics,
		defaults:       defaults,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	eventLength := ptr.Value(req.EventLength, uc.defaults.EventLength)
	minimumNotice := ptr.Value(req.MinimumNotice, uc.defaults.MinimumNotice)

	uc.logger.Info("GetAvailableSlots: schedule=%d, from=%s, to=%s, eventLength=%d, cadence=%d",
		req.ScheduleID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), eventLength, req.Cadence)

	// 1. Валидация входных данных
	if err := validateRequest(req, eventLength, minimumNotice, uc.defaults.MaxWindowDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание
	schedule, err := uc.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if !tz.IsValid(schedule.TimeZone) {
		uc.logger.Warn("GetAvailableSlots: schedule id=%d has unknown time zone %q, using UTC",
			schedule.ID, schedule.TimeZone)
	}

	// 3. Параллельно получаем бронирования и занятость из внешних календарей
	var (
		bookings     []*domain.Booking
		calendarBusy []domain.BusyInterval
		degraded     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = uc.bookingRepo.GetByOwnerInWindow(gctx, domain.BookingsFilter{
			OwnerID: schedule.OwnerID,
			From:    req.From,
			To:      req.To,
		})
		if err != nil {
			return fmt.Errorf("failed to get bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		calendarBusy, err = uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(gctx, schedule.OwnerID, req.From, req.To)
		if errors.Is(err, calendarservice.ErrServiceDegraded) {
			// Слоты считаются только по бронированиям
			degraded = true
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load busy time for owner=%d: %v", schedule.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if degraded {
		uc.metrics.IncCalendarDegraded(operation)
		uc.logger.Error("GetAvailableSlots: calendar busy time ignored for owner=%d", schedule.OwnerID)
	}

	busy := append(engine.BusyIntervalsFromBookings(bookings), calendarBusy...)

	// 4. Считаем доступность
	displayTimeZone := req.TimeZone
	if displayTimeZone == "" {
		displayTimeZone = tz.LoadOrUTC(schedule.TimeZone).Name()
	}

	result := uc.engine.ComputeAvailability(domain.AvailabilityQuery{
		Schedule:                    schedule,
		From:                        req.From,
		To:                          req.To,
		EventLengthMinutes:          eventLength,
		CadenceMinutes:              req.Cadence,
		MinimumBookingNoticeMinutes: minimumNotice,
		OffsetStartMinutes:          req.OffsetStart,
		DisplayTimeZone:             displayTimeZone,
	}, busy)

	uc.metrics.ObserveSlots(len(result.Slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for schedule=%d (%d bookings, %d calendar busy)",
		len(result.Slots), schedule.ID, len(bookings), len(calendarBusy))

	return toResponse(schedule.ID, displayTimeZone, eventLength, degraded, result), nil
}

func toResponse(scheduleID int64, timeZone string, eventLength int, degraded bool, result engine.Result) *Response {
	length := time.Duration(eventLength) * time.Minute

	slots := make([]Slot, len(result.Slots))
	for i, s := range result.Slots {
		slots[i] = Slot{Start: s.Start, End: s.End(length)}
	}

	intervals := make([]Interval, len(result.Intervals))
	for i, iv := range result.Intervals {
		intervals[i] = Interval{Start: iv.Start, End: iv.End}
	}

	return &Response{
		ScheduleID:       scheduleID,
		TimeZone:         timeZone,
		EventLength:      eventLength,
		Slots:            slots,
		Intervals:        intervals,
		CalendarDegraded: degraded,
	}
}
