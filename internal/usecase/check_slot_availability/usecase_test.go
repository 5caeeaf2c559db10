package check_slot_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSchedules struct {
	schedule *domain.Schedule
	err      error
	calls    int
}

func (f *fakeSchedules) GetByID(context.Context, int64) (*domain.Schedule, error) {
	f.calls++
	return f.schedule, f.err
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
	filter   domain.BookingsFilter
}

func (f *fakeBookings) GetByOwnerInWindow(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, f.err
}

type fakeCalendar struct {
	busy []domain.BusyInterval
	err  error
}

func (f *fakeCalendar) GetBusyIntervalsWithGracefulDegradation(context.Context, int64, time.Time, time.Time) ([]domain.BusyInterval, error) {
	return f.busy, f.err
}

type fakeMetrics struct {
	checks   []bool
	degraded int
}

func (m *fakeMetrics) IncAvailabilityCheck(available bool) { m.checks = append(m.checks, available) }
func (m *fakeMetrics) IncCalendarDegraded(string)          { m.degraded++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	schedules *fakeSchedules
	bookings  *fakeBookings
	calendar  *fakeCalendar
	metrics   *fakeMetrics
	uc        *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		schedules: &fakeSchedules{schedule: &domain.Schedule{
			ID:       1,
			OwnerID:  10,
			TimeZone: "UTC",
			Entries: []domain.ScheduleEntry{
				domain.NewRuleEntry(domain.WorkingHoursRule{
					Days:      []time.Weekday{time.Monday},
					StartTime: types.MustTimeString("09:00"),
					EndTime:   types.MustTimeString("17:00"),
				}),
			},
		}},
		bookings: &fakeBookings{bookings: []*domain.Booking{
			{OwnerID: 10, Start: at(10, 0), End: at(11, 0), Status: domain.StatusConfirmed},
			{OwnerID: 10, Start: at(14, 0), End: at(15, 0), Status: domain.StatusCancelledByUser},
		}},
		calendar: &fakeCalendar{},
		metrics:  &fakeMetrics{},
	}
	f.uc = NewUseCase(f.schedules, f.bookings, f.calendar, engine.New(fixedTime{now: now}), f.metrics, 0, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func request(start, end time.Time) *Request {
	return &Request{ScheduleID: 1, Start: start, End: end}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       bool
		reason     string
	}{
		{"free slot", at(13, 0), at(13, 30), true, ""},
		{"partial overlap with booking", at(10, 30), at(11, 30), false, ReasonOutsideAvailability},
		{"cancelled booking frees time", at(14, 0), at(15, 0), true, ""},
		{"runs past closing", at(16, 45), at(17, 15), false, ReasonOutsideAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(monday.AddDate(0, 0, -1))

			resp, err := f.uc.Execute(context.Background(), request(tt.start, tt.end))

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Available)
			assert.Equal(t, tt.reason, resp.Reason)
			assert.Equal(t, []bool{tt.want}, f.metrics.checks)
			assert.Equal(t, int64(10), f.bookings.filter.OwnerID)
			assert.Equal(t, tt.start, f.bookings.filter.From)
			assert.Equal(t, tt.end, f.bookings.filter.To)
		})
	}
}

func TestExecute_CalendarBusy(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.calendar.busy = []domain.BusyInterval{{
		TimeInterval: domain.TimeInterval{Start: at(13, 15), End: at(13, 45)},
		Source:       domain.BusySourceCalendar,
	}}

	resp, err := f.uc.Execute(context.Background(), request(at(13, 0), at(13, 30)))

	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_TooLateToBook(t *testing.T) {
	f := newFixture(at(12, 0))
	req := request(at(13, 0), at(13, 30))
	req.MinimumNotice = ptr.Ptr(120)

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonTooLateToBook, resp.Reason)
	assert.Equal(t, 0, f.schedules.calls)
}

func TestExecute_CalendarDegradationFailsClosed(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.calendar.err = fmt.Errorf("%w: owner_id=10", calendarservice.ErrServiceDegraded)

	_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(13, 30)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, 1, f.metrics.degraded)
	assert.Empty(t, f.metrics.checks)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("schedule not found", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.schedules.err = scheduleRepo.ErrScheduleNotFound

		_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(13, 30)))

		assert.True(t, errors.Is(err, ErrScheduleNotFound))
	})

	t.Run("booking storage failure", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.bookings.err = errors.New("timeout")

		_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(13, 30)))

		assert.True(t, errors.Is(err, ErrInternal))
	})
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"non-positive schedule", &Request{ScheduleID: 0, Start: at(13, 0), End: at(13, 30)}},
		{"missing start", &Request{ScheduleID: 1, End: at(13, 30)}},
		{"end before start", &Request{ScheduleID: 1, Start: at(13, 30), End: at(13, 0)}},
		{"empty slot", &Request{ScheduleID: 1, Start: at(13, 0), End: at(13, 0)}},
		{"longer than a day", &Request{ScheduleID: 1, Start: at(0, 0), End: at(24, 1)}},
		{"negative notice", &Request{ScheduleID: 1, Start: at(13, 0), End: at(13, 30), MinimumNotice: ptr.Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFixture(monday.AddDate(0, 0, -1)).uc.Execute(context.Background(), tt.req)

			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}
