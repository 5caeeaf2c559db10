package check_slot_availability

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("check_slot_availability: schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_slot_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase,
	// в том числе при недоступности CalendarService
	ErrInternal = errors.New("check_slot_availability: internal error")
)
