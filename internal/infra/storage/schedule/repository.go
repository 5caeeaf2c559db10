package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий для чтения расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// availabilityRow строка таблицы availability
// date IS NULL - еженедельное правило, иначе - переопределение на дату
type availabilityRow struct {
	ID        int64
	Days      []int64
	Date      sql.NullTime
	StartTime types.TimeString
	EndTime   types.TimeString
}

// GetByID получает расписание вместе со всеми правилами и переопределениями
func (r *Repository) GetByID(ctx context.Context, scheduleID int64) (*domain.Schedule, error) {
	query, args, err := buildScheduleQuery(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.Schedule
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.OwnerID,
		&schedule.Name,
		&schedule.TimeZone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	rows, err := r.getAvailability(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	schedule.Entries = toEntries(rows)
	return &schedule, nil
}

func (r *Repository) getAvailability(ctx context.Context, scheduleID int64) ([]availabilityRow, error) {
	query, args, err := buildAvailabilityQuery(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: getAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []availabilityRow
	for rows.Next() {
		var row availabilityRow
		if err := rows.Scan(
			&row.ID,
			pq.Array(&row.Days),
			&row.Date,
			&row.StartTime,
			&row.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: getAvailability - scan availability: %v", ErrScanRow, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getAvailability - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func buildScheduleQuery(scheduleID int64) (string, []interface{}, error) {
	return psqlbuilder.Select("id", "owner_id", "name", "time_zone").
		From("schedules").
		Where(squirrel.Eq{"id": scheduleID}).
		ToSql()
}

func buildAvailabilityQuery(scheduleID int64) (string, []interface{}, error) {
	return psqlbuilder.Select("id", "days", "date", "start_time", "end_time").
		From("availability").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("id").
		ToSql()
}

// toEntries превращает строки таблицы в записи расписания
// Дни недели вне диапазона 0..6 отбрасываются
func toEntries(rows []availabilityRow) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		if row.Date.Valid {
			y, m, d := row.Date.Time.Date()
			entry := domain.NewOverrideEntry(domain.DateOverride{
				Date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
			})
			entry.ID = row.ID
			entries = append(entries, entry)
			continue
		}

		days := make([]time.Weekday, 0, len(row.Days))
		for _, day := range row.Days {
			if day < int64(time.Sunday) || day > int64(time.Saturday) {
				continue
			}
			days = append(days, time.Weekday(day))
		}
		entry := domain.NewRuleEntry(domain.WorkingHoursRule{
			Days:      days,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
		entry.ID = row.ID
		entries = append(entries, entry)
	}
	return entries
}
