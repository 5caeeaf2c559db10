package check_slot_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

type fakeUseCase struct {
	resp *checkSlotAvailability.Response
	err  error
	req  *checkSlotAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkSlotAvailability.Request) (*checkSlotAvailability.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc CheckSlotAvailabilityUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/schedules/{scheduleId}/slot-availability", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	start := time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &checkSlotAvailability.Response{
		ScheduleID: 1,
		Start:      start,
		End:        start.Add(time.Hour),
		Available:  false,
		Reason:     checkSlotAvailability.ReasonOutsideAvailability,
	}}

	rec := serve(uc, "/api/v1/schedules/1/slot-availability?start=2025-03-03T10:30:00Z&end=2025-03-03T11:30:00Z&minimumNotice=15")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"scheduleId": 1,
		"start": "2025-03-03T10:30:00Z",
		"end": "2025-03-03T11:30:00Z",
		"available": false,
		"reason": "outside_availability"
	}`, rec.Body.String())
	require.NotNil(t, uc.req)
	assert.True(t, uc.req.Start.Equal(start))
	assert.Equal(t, 15, *uc.req.MinimumNotice)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad schedule id", "/api/v1/schedules/x/slot-availability?start=2025-03-03T10:30:00Z&end=2025-03-03T11:30:00Z", nil, http.StatusBadRequest},
		{"missing end", "/api/v1/schedules/1/slot-availability?start=2025-03-03T10:30:00Z", nil, http.StatusBadRequest},
		{"date only", "/api/v1/schedules/1/slot-availability?start=2025-03-03&end=2025-03-04", nil, http.StatusBadRequest},
		{"not found", "/api/v1/schedules/1/slot-availability?start=2025-03-03T10:30:00Z&end=2025-03-03T11:30:00Z", checkSlotAvailability.ErrScheduleNotFound, http.StatusNotFound},
		{"invalid input", "/api/v1/schedules/1/slot-availability?start=2025-03-03T11:30:00Z&end=2025-03-03T10:30:00Z", checkSlotAvailability.ErrInvalidInput, http.StatusBadRequest},
		{"calendar down", "/api/v1/schedules/1/slot-availability?start=2025-03-03T10:30:00Z&end=2025-03-03T11:30:00Z", checkSlotAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
