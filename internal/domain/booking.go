package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelled          BookingStatus = "cancelled"
	StatusRejected           BookingStatus = "rejected"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking is the part of a persisted booking the availability engine needs
type Booking struct {
	ID         int64
	OwnerID    int64
	ScheduleID int64
	Start      time.Time
	End        time.Time
	Status     BookingStatus
}

// IsActive returns true if the booking still consumes the owner's time
func (b *Booking) IsActive() bool {
	for _, s := range InactiveStatuses {
		if b.Status == s {
			return false
		}
	}
	return true
}

// Interval returns the time the booking occupies
func (b *Booking) Interval() TimeInterval {
	return TimeInterval{Start: b.Start, End: b.End}
}

// BookingsFilter фильтр для выборки бронирований владельца за период
type BookingsFilter struct {
	OwnerID         int64     // Обязательный параметр
	From            time.Time // Начало окна (включительно)
	To              time.Time // Конец окна (исключительно)
	IncludeInactive bool      // Включать ли отменённые/отклонённые бронирования
}
