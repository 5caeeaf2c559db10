package check_slot_availability

import (
	"net/url"
	"strconv"
	"time"

	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	ScheduleID int64  `json:"scheduleId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Available  bool   `json:"available"`
	Reason     string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlotAvailability.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		ScheduleID: resp.ScheduleID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
		Available:  resp.Available,
		Reason:     resp.Reason,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров (start и end в RFC3339)
func ToUseCaseRequest(scheduleID int64, query url.Values) (*checkSlotAvailability.Request, error) {
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		return nil, err
	}

	req := &checkSlotAvailability.Request{
		ScheduleID: scheduleID,
		Start:      start,
		End:        end,
	}

	if value := query.Get("minimumNotice"); value != "" {
		notice, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		req.MinimumNotice = &notice
	}

	return req, nil
}
