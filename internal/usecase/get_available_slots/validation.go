package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// validateRequest валидирует входные данные запроса
// eventLength и minimumNotice - уже подставленные значения с учётом умолчаний
func validateRequest(req *Request, eventLength, minimumNotice, maxWindowDays int) error {
	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if maxWindowDays > 0 && req.To.Sub(req.From) > time.Duration(maxWindowDays)*24*time.Hour {
		return fmt.Errorf("%w: at most %d days can be requested", ErrWindowTooLarge, maxWindowDays)
	}

	if eventLength < domain.MinEventLengthMinutes || eventLength > domain.MaxEventLengthMinutes {
		return fmt.Errorf("%w: eventLength must be between %d and %d",
			ErrInvalidInput, domain.MinEventLengthMinutes, domain.MaxEventLengthMinutes)
	}

	if req.Cadence < 0 || req.Cadence > domain.MaxCadenceMinutes {
		return fmt.Errorf("%w: cadence must be between 0 and %d", ErrInvalidInput, domain.MaxCadenceMinutes)
	}

	if minimumNotice < domain.MinBookingNoticeMinutes || minimumNotice > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minimumNotice must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if req.OffsetStart < 0 || req.OffsetStart > domain.MaxOffsetStartMinutes {
		return fmt.Errorf("%w: offsetStart must be between 0 and %d", ErrInvalidInput, domain.MaxOffsetStartMinutes)
	}

	if req.TimeZone != "" && !tz.IsValid(req.TimeZone) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeZone, req.TimeZone)
	}

	return nil
}
