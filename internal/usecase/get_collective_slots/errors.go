package get_collective_slots

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда одно из расписаний не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidTimeZone возвращается при неизвестной IANA таймзоне
	ErrInvalidTimeZone = errors.New("invalid time zone")

	// ErrWindowTooLarge возвращается, когда окно запроса превышает допустимое количество дней
	ErrWindowTooLarge = errors.New("requested window is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
