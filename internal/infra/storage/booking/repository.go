package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwnerInWindow получает бронирования владельца, пересекающиеся с окном [From, To)
// Неактивные бронирования (отменённые, отклонённые, no-show) исключаются,
// если не выставлен IncludeInactive
func (r *Repository) GetByOwnerInWindow(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if !filter.To.After(filter.From) {
		return nil, fmt.Errorf("%w: GetByOwnerInWindow - empty window %s..%s", ErrInvalidFilter, filter.From, filter.To)
	}

	query, args, err := buildWindowQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func buildWindowQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	// Полуоткрытые интервалы: бронь пересекает окно, если start < to и end > from
	where := squirrel.And{
		squirrel.Eq{"owner_id": filter.OwnerID},
		squirrel.Lt{"start_time": filter.To},
		squirrel.Gt{"end_time": filter.From},
	}

	if !filter.IncludeInactive {
		statuses := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			statuses[i] = string(s)
		}
		where = append(where, squirrel.NotEq{"status": statuses})
	}

	return psqlbuilder.Select(
		"id",
		"owner_id",
		"schedule_id",
		"start_time",
		"end_time",
		"status",
	).
		From("bookings").
		Where(where).
		OrderBy("start_time ASC").
		ToSql()
}

// scanBookings вспомогательный метод для сканирования списка бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking

	for rows.Next() {
		var booking domain.Booking
		var scheduleID sql.NullInt64

		err := rows.Scan(
			&booking.ID,
			&booking.OwnerID,
			&scheduleID,
			&booking.Start,
			&booking.End,
			&booking.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}

		booking.ScheduleID = scheduleID.Int64
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
