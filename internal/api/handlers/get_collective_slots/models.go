package get_collective_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getCollectiveSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_collective_slots"
)

// CollectiveSlotsResponse HTTP response model
type CollectiveSlotsResponse struct {
	ScheduleIDs      []int64         `json:"scheduleIds"`
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

// FreeInterval модель общего свободного интервала
type FreeInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCollectiveSlots.Response) *CollectiveSlotsResponse {
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

	return &CollectiveSlotsResponse{
		ScheduleIDs:      resp.ScheduleIDs,
		TimeZone:         resp.TimeZone,
		EventLength:      resp.EventLength,
		CalendarDegraded: resp.CalendarDegraded,
		Slots:            slots,
		Intervals:        intervals,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// scheduleIds принимается списком через запятую или повторяющимся параметром
func ToUseCaseRequest(query url.Values) (*getCollectiveSlots.Request, error) {
	scheduleIDs, err := parseScheduleIDs(query["scheduleIds"])
	if err != nil {
		return nil, err
	}

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

	req := &getCollectiveSlots.Request{
		ScheduleIDs: scheduleIDs,
		From:        from,
		To:          to,
		TimeZone:    timeZone,
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

func parseScheduleIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("scheduleIds: %w", err)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("scheduleIds: value is required")
	}
	return ids, nil
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
