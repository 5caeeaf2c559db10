package check_slot_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

const operation = "check_slot_availability"

// UseCase use case проверки доступности конкретного слота перед бронированием
type UseCase struct {
	scheduleRepo         ScheduleRepository
	bookingRepo          BookingRepository
	calendarClient       CalendarServiceClient
	engine               AvailabilityEngine
	metrics              Metrics
	defaultMinimumNotice int
	timeProvider         TimeProvider
	logger               Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	calendarClient CalendarServiceClient,
	engine AvailabilityEngine,
	metrics Metrics,
	defaultMinimumNotice int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:         scheduleRepo,
		bookingRepo:          bookingRepo,
		calendarClient:       calendarClient,
		engine:               engine,
		metrics:              metrics,
		defaultMinimumNotice: defaultMinimumNotice,
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
	}
}

// Execute выполняет проверку слота
// Недоступность CalendarService не допускается: без внешней занятости
// нельзя подтвердить, что слот свободен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	minimumNotice := ptr.Value(req.MinimumNotice, uc.defaultMinimumNotice)

	uc.logger.Info("CheckSlotAvailability: schedule=%d, start=%s, end=%s",
		req.ScheduleID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, minimumNotice); err != nil {
		uc.logger.Warn("CheckSlotAvailability: validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		ScheduleID: req.ScheduleID,
		Start:      req.Start,
		End:        req.End,
	}

	// 2. Проверяем минимальное время до начала
	if isTooLateToBook(req.Start, uc.timeProvider.Now(), minimumNotice) {
		uc.logger.Info("CheckSlotAvailability: slot %s is too late to book (notice=%d min)",
			req.Start.Format(time.RFC3339), minimumNotice)
		response.Reason = ReasonTooLateToBook
		uc.metrics.IncAvailabilityCheck(false)
		return response, nil
	}

	// 3. Получаем расписание
	schedule, err := uc.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CheckSlotAvailability: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("CheckSlotAvailability: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Параллельно получаем занятость, пересекающуюся со слотом
	var (
		bookings     []*domain.Booking
		calendarBusy []domain.BusyInterval
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = uc.bookingRepo.GetByOwnerInWindow(gctx, domain.BookingsFilter{
			OwnerID: schedule.OwnerID,
			From:    req.Start,
			To:      req.End,
		})
		if err != nil {
			return fmt.Errorf("failed to get bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		calendarBusy, err = uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(gctx, schedule.OwnerID, req.Start, req.End)
		if errors.Is(err, calendarservice.ErrServiceDegraded) {
			uc.metrics.IncCalendarDegraded(operation)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("CheckSlotAvailability: failed to load busy time for owner=%d: %v", schedule.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Проверяем, что слот целиком помещается в свободное время
	busy := append(engine.BusyIntervalsFromBookings(bookings), calendarBusy...)
	candidate := domain.TimeInterval{Start: req.Start, End: req.End}

	response.Available = uc.engine.IsSlotAvailable(candidate, schedule, busy)
	if !response.Available {
		response.Reason = ReasonOutsideAvailability
	}
	uc.metrics.IncAvailabilityCheck(response.Available)

	uc.logger.Info("CheckSlotAvailability: schedule=%d slot %s available=%t",
		schedule.ID, candidate, response.Available)

	return response, nil
}
