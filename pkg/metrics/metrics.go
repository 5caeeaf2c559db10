package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec

	SlotsGenerated     *prometheus.HistogramVec
	AvailabilityChecks *prometheus.CounterVec
	CacheRequests      *prometheus.CounterVec
	CalendarDegraded   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry (используется promhttp.Handler())
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		SlotsGenerated: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_generated",
			Help:        "Number of slots produced per availability query",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{}),

		AvailabilityChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slot_checks_total",
			Help:        "Point-in-time availability checks by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_cache_requests_total",
			Help:        "Schedule cache lookups by result (hit, miss, error)",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CalendarDegraded: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_service_degraded_total",
			Help:        "Requests served without external calendar busy time",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// ObserveSlots безопасен для nil получателя (метрики выключены)
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues().Observe(float64(count))
}

// IncAvailabilityCheck учитывает результат проверки слота
func (m *Metrics) IncAvailabilityCheck(available bool) {
	if m == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	m.AvailabilityChecks.WithLabelValues(result).Inc()
}

// IncCache учитывает результат обращения к кешу расписаний
func (m *Metrics) IncCache(result string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

// IncCalendarDegraded учитывает запрос, обслуженный без внешнего календаря
func (m *Metrics) IncCalendarDegraded(operation string) {
	if m == nil {
		return
	}
	m.CalendarDegraded.WithLabelValues(operation).Inc()
}
