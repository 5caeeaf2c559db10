package check_slot_availability

import "time"

// Причины недоступности слота
const (
	ReasonOutsideAvailability = "outside_availability" // слот не помещается в свободное время
	ReasonTooLateToBook       = "too_late_to_book"     // нарушено минимальное время до начала
)

// Request модель запроса на проверку слота
type Request struct {
	ScheduleID    int64     // ID расписания
	Start         time.Time // Начало слота
	End           time.Time // Конец слота
	MinimumNotice *int      // Минимальное время до начала в минутах (nil - значение по умолчанию)
}

// Response модель ответа проверки
type Response struct {
	ScheduleID int64
	Start      time.Time
	End        time.Time
	Available  bool
	Reason     string // пусто, если слот доступен
}
