package get_collective_slots

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

const operation = "get_collective_slots"

// UseCase use case для получения слотов, свободных сразу у нескольких расписаний
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

// Execute выполняет use case получения общих слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	eventLength := ptr.Value(req.EventLength, uc.defaults.EventLength)
	minimumNotice := ptr.Value(req.MinimumNotice, uc.defaults.MinimumNotice)

	uc.logger.Info("GetCollectiveSlots: schedules=%v, from=%s, to=%s, eventLength=%d, cadence=%d",
		req.ScheduleIDs, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), eventLength, req.Cadence)

	// 1. Валидация входных данных
	if err := validateRequest(req, eventLength, minimumNotice, uc.defaults.MaxWindowDays); err != nil {
		uc.logger.Warn("GetCollectiveSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Параллельно получаем расписания участников
	schedules, err := uc.loadSchedules(ctx, req.ScheduleIDs)
	if err != nil {
		return nil, err
	}

	// 3. Параллельно получаем занятость каждого участника
	participants, degraded, err := uc.loadParticipants(ctx, schedules, req.From, req.To)
	if err != nil {
		return nil, err
	}

	if degraded {
		uc.metrics.IncCalendarDegraded(operation)
	}

	// 4. Считаем пересечение доступности
	displayTimeZone := req.TimeZone
	if displayTimeZone == "" {
		displayTimeZone = tz.LoadOrUTC(schedules[0].TimeZone).Name()
	}

	result := uc.engine.ComputeCollectiveAvailability(domain.AvailabilityQuery{
		From:                        req.From,
		To:                          req.To,
		EventLengthMinutes:          eventLength,
		CadenceMinutes:              req.Cadence,
		MinimumBookingNoticeMinutes: minimumNotice,
		OffsetStartMinutes:          req.OffsetStart,
		DisplayTimeZone:             displayTimeZone,
	}, participants)

	uc.metrics.ObserveSlots(len(result.Slots))
	uc.logger.Info("GetCollectiveSlots: generated %d slots for schedules=%v", len(result.Slots), req.ScheduleIDs)

	return toResponse(req.ScheduleIDs, displayTimeZone, eventLength, degraded, result), nil
}

func (uc *UseCase) loadSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			schedule, err := uc.scheduleRepo.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
					return fmt.Errorf("%w: id=%d", ErrScheduleNotFound, id)
				}
				return fmt.Errorf("%w: failed to get schedule id=%d: %v", ErrInternal, id, err)
			}
			if !tz.IsValid(schedule.TimeZone) {
				uc.logger.Warn("GetCollectiveSlots: schedule id=%d has unknown time zone %q, using UTC",
					schedule.ID, schedule.TimeZone)
			}
			schedules[i] = schedule
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			uc.logger.Warn("GetCollectiveSlots: %v", err)
		} else {
			uc.logger.Error("GetCollectiveSlots: %v", err)
		}
		return nil, err
	}
	return schedules, nil
}

func (uc *UseCase) loadParticipants(ctx context.Context, schedules []*domain.Schedule, from, to time.Time) ([]engine.Participant, bool, error) {
	bookings := make([][]*domain.Booking, len(schedules))
	calendarBusy := make([][]domain.BusyInterval, len(schedules))
	degraded := make([]bool, len(schedules))

	g, gctx := errgroup.WithContext(ctx)
	for i, schedule := range schedules {
		i, schedule := i, schedule
		g.Go(func() error {
			var err error
			bookings[i], err = uc.bookingRepo.GetByOwnerInWindow(gctx, domain.BookingsFilter{
				OwnerID: schedule.OwnerID,
				From:    from,
				To:      to,
			})
			if err != nil {
				return fmt.Errorf("failed to get bookings for owner=%d: %w", schedule.OwnerID, err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			calendarBusy[i], err = uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(gctx, schedule.OwnerID, from, to)
			if errors.Is(err, calendarservice.ErrServiceDegraded) {
				degraded[i] = true
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetCollectiveSlots: failed to load busy time: %v", err)
		return nil, false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	participants := make([]engine.Participant, len(schedules))
	anyDegraded := false
	for i, schedule := range schedules {
		if degraded[i] {
			anyDegraded = true
			uc.logger.Error("GetCollectiveSlots: calendar busy time ignored for owner=%d", schedule.OwnerID)
		}
		participants[i] = engine.Participant{
			Schedule: schedule,
			Busy:     append(engine.BusyIntervalsFromBookings(bookings[i]), calendarBusy[i]...),
		}
	}
	return participants, anyDegraded, nil
}

func toResponse(scheduleIDs []int64, timeZone string, eventLength int, degraded bool, result engine.Result) *Response {
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
		ScheduleIDs:      scheduleIDs,
		TimeZone:         timeZone,
		EventLength:      eventLength,
		Slots:            slots,
		Intervals:        intervals,
		CalendarDegraded: degraded,
	}
}
