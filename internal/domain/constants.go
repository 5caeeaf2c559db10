package domain

// Default availability values
const (
	DefaultEventLengthMinutes      = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultMaxWindowDays           = 42
)

// Business validation constants
const (
	MinEventLengthMinutes   = 1
	MaxEventLengthMinutes   = 1440 // 1 day
	MaxCadenceMinutes       = 1440
	MaxOffsetStartMinutes   = 1440
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 525600 // 1 year
	MaxCollectiveSchedules  = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов бронирований, которые не занимают время
// Используется для фильтрации при построении занятых интервалов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}
