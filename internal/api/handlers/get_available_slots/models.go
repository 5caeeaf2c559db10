package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ScheduleID       int64           `json:"scheduleId"`
	TimeZone         string          `json:"timeZone"`
	EventLength      int             `json:"eventLength"`
	CalendarDegraded bool            `json:"calendarDegraded"`
	Slots            []AvailableSlot `json:"slots"`
	Intervals        []FreeInterval  `json:"intervals"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeInterval модель свободного интервала
type FreeInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		}
	}

	intervals := make([]FreeInterval, len(resp.Intervals))
	for i, iv := range resp.Intervals {
		intervals[i] = FreeInterval{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		ScheduleID:       resp.ScheduleID,
		TimeZone:         resp.TimeZone,
		EventLength:      resp.EventLength,
		CalendarDegraded: resp.CalendarDegraded,
		Slots:            slots,
		Intervals:        intervals,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// from/to принимаются в RFC3339 или как дата YYYY-MM-DD (полночь в timeZone, иначе UTC)
func ToUseCaseRequest(scheduleID int64, query url.Values) (*getAvailableSlots.Request, error) {
	timeZone := query.Get("timeZone")
	loc := time.UTC
	if timeZone != "" {
		if l, err := time.LoadLocation(timeZone); err == nil {
			loc = l
		}
	}

	from, err := parseBoundary(query.Get("from"), loc)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseBoundary(query.Get("to"), loc)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	req := &getAvailableSlots.Request{
		ScheduleID: scheduleID,
		From:       from,
		To:         to,
		TimeZone:   timeZone,
	}

	if req.EventLength, err = optionalInt(query, "eventLength"); err != nil {
		return nil, err
	}
	if req.MinimumNotice, err = optionalInt(query, "minimumNotice"); err != nil {
		return nil, err
	}

	cadence, err := optionalInt(query, "cadence")
	if err != nil {
		return nil, err
	}
	if cadence != nil {
		req.Cadence = *cadence
	}

	offset, err := optionalInt(query, "offsetStart")
	if err != nil {
		return nil, err
	}
	if offset != nil {
		req.OffsetStart = *offset
	}

	return req, nil
}

func parseBoundary(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("value is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(domain.DateFormat, value, loc)
}

func optionalInt(query url.Values, key string) (*int, error) {
	value := query.Get(key)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &n, nil
}
