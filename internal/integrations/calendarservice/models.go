package calendarservice

import "time"

// BusyResponse ответ CalendarService со списком занятых интервалов владельца
type BusyResponse struct {
	OwnerID int64        `json:"owner_id"`
	Busy    []BusyPeriod `json:"busy"`
}

// BusyPeriod занятый интервал из внешнего календаря
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title,omitempty"`
}

// ErrorResponse модель ошибки от CalendarService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
