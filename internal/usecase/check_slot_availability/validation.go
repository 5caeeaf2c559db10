package check_slot_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, minimumNotice int) error {
	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if req.End.Sub(req.Start) > time.Duration(domain.MaxEventLengthMinutes)*time.Minute {
		return fmt.Errorf("%w: slot cannot be longer than %d minutes", ErrInvalidInput, domain.MaxEventLengthMinutes)
	}

	if minimumNotice < domain.MinBookingNoticeMinutes || minimumNotice > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minimumNotice must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}

// isTooLateToBook проверяет, что до начала слота осталось меньше minimumNotice минут
func isTooLateToBook(start, now time.Time, minimumNotice int) bool {
	return start.Before(now.Add(time.Duration(minimumNotice) * time.Minute))
}
