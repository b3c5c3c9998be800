package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookingTransitions *prometheus.CounterVec
	capacityRejections *prometheus.CounterVec
	notifications      *prometheus.CounterVec
	holdImportRuns     *prometheus.CounterVec
	holdChanges        *prometheus.CounterVec
	reminderRuns       *prometheus.CounterVec
	transactions       *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном registry
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking state machine transitions by action and result",
			ConstLabels: labels,
		}, []string{"action", "result"}),
		capacityRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_capacity_rejections_total",
			Help:        "Reservations and holds rejected for lack of capacity",
			ConstLabels: labels,
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notifications sent by category and result",
			ConstLabels: labels,
		}, []string{"category", "result"}),
		holdImportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hold_import_runs_total",
			Help:        "External hold import runs by feed source and result",
			ConstLabels: labels,
		}, []string{"source", "result"}),
		holdChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hold_changes_total",
			Help:        "External hold changes applied by the importer",
			ConstLabels: labels,
		}, []string{"source", "change"}),
		reminderRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminder_runs_total",
			Help:        "Reminder runs by category and trigger",
			ConstLabels: labels,
		}, []string{"category", "trigger"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Database transactions by isolation kind and result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.bookingTransitions,
		m.capacityRejections,
		m.notifications,
		m.holdImportRuns,
		m.holdChanges,
		m.reminderRuns,
		m.transactions,
	)

	return m
}

// Handler возвращает HTTP обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncBookingTransition считает переход статуса бронирования
func (m *Metrics) IncBookingTransition(action, result string) {
	if m == nil {
		return
	}
	m.bookingTransitions.WithLabelValues(action, result).Inc()
}

// IncCapacityRejection считает отказ по вместимости (kind: booking, hold)
func (m *Metrics) IncCapacityRejection(kind string) {
	if m == nil {
		return
	}
	m.capacityRejections.WithLabelValues(kind).Inc()
}

// IncNotification считает отправленное уведомление
func (m *Metrics) IncNotification(category, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(category, result).Inc()
}

// IncHoldImportRun считает запуск импорта внешних блокировок
func (m *Metrics) IncHoldImportRun(source, result string) {
	if m == nil {
		return
	}
	m.holdImportRuns.WithLabelValues(source, result).Inc()
}

// AddHoldChanges считает изменения внешних блокировок
func (m *Metrics) AddHoldChanges(source, change string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.holdChanges.WithLabelValues(source, change).Add(float64(n))
}

// IncReminderRun считает запуск напоминаний
func (m *Metrics) IncReminderRun(category, trigger string) {
	if m == nil {
		return
	}
	m.reminderRuns.WithLabelValues(category, trigger).Inc()
}

// ObserveTransaction реализует txmanager.Observer
func (m *Metrics) ObserveTransaction(kind, result string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(kind, result).Inc()
}
