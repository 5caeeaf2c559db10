package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/schedules/{scheduleId}/available-slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedules/"+id+"/available-slots", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/schedules/{scheduleId}/available-slots", "404")
	assert.Equal(t, float64(3), testutil.ToFloat64(counter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
