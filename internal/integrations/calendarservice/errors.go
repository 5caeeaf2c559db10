package calendarservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CalendarService недоступен и занятость из внешних календарей неизвестна
	ErrServiceDegraded = errors.New("calendarservice unavailable: graceful degradation applied")
)
