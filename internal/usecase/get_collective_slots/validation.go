package get_collective_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, eventLength, minimumNotice, maxWindowDays int) error {
	if len(req.ScheduleIDs) == 0 {
		return fmt.Errorf("%w: at least one scheduleId is required", ErrInvalidInput)
	}

	if len(req.ScheduleIDs) > domain.MaxCollectiveSchedules {
		return fmt.Errorf("%w: at most %d schedules can be combined", ErrInvalidInput, domain.MaxCollectiveSchedules)
	}

	seen := make(map[int64]bool, len(req.ScheduleIDs))
	for _, id := range req.ScheduleIDs {
		if id <= 0 {
			return fmt.Errorf("%w: scheduleId must be positive, got %d", ErrInvalidInput, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate scheduleId %d", ErrInvalidInput, id)
		}
		seen[id] = true
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
