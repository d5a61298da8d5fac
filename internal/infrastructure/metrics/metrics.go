// Package metrics exposes Prometheus instruments for HTTP traffic, the
// payment ledger, expense bookings and the database pool.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Namespace prefixes every metric name
const Namespace = "sitebuild"

// Metric names, without the namespace prefix.
const (
	MetricHTTPRequestsTotal      = "http_requests_total"
	MetricHTTPRequestDuration    = "http_request_duration_seconds"
	MetricHTTPActiveRequests     = "http_active_requests"
	MetricHTTPResponseSizeBytes  = "http_response_size_bytes"
	MetricPaymentsTotal          = "worker_payments_total"
	MetricPaymentsAmountTotal    = "worker_payments_amount_total"
	MetricAssignmentsTotal       = "worker_assignments_total"
	MetricExpensesTotal          = "project_expenses_total"
	MetricExpensesAmountTotal    = "project_expenses_amount_total"
	MetricDBSlowQueriesTotal     = "db_slow_queries_total"
	defaultHTTPResponseSizeLimit = 5_000_000
)

// Metrics owns the instruments and the private registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpActive       prometheus.Gauge
	httpResponseSize *prometheus.HistogramVec

	payments       prometheus.Counter
	paymentsAmount prometheus.Counter
	assignments    prometheus.Counter
	expenses       prometheus.Counter
	expensesAmount prometheus.Counter
	slowQueries    prometheus.Counter

	dbOnce sync.Once
}

// New creates the instruments and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricHTTPRequestsTotal,
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricHTTPRequestDuration,
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "route"}),
		httpActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricHTTPActiveRequests,
			Help:      "Number of HTTP requests currently being served.",
		}),
		httpResponseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricHTTPResponseSizeBytes,
			Help:      "HTTP response body size in bytes.",
			Buckets:   prometheus.ExponentialBucketsRange(100, defaultHTTPResponseSizeLimit, 8),
		}, []string{"method", "route"}),
		payments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricPaymentsTotal,
			Help:      "Number of worker payments recorded.",
		}),
		paymentsAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricPaymentsAmountTotal,
			Help:      "Sum of recorded worker payment amounts.",
		}),
		assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricAssignmentsTotal,
			Help:      "Number of worker assignments created.",
		}),
		expenses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricExpensesTotal,
			Help:      "Number of project expenses booked.",
		}),
		expensesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricExpensesAmountTotal,
			Help:      "Sum of booked project expense amounts.",
		}),
		slowQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricDBSlowQueriesTotal,
			Help:      "Number of SQL statements slower than the configured threshold.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequests, m.httpDuration, m.httpActive, m.httpResponseSize,
		m.payments, m.paymentsAmount, m.assignments, m.expenses, m.expensesAmount, m.slowQueries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the /metrics endpoint
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterDB exports connection pool statistics for db. Only the first call
// registers; later calls are ignored.
func (m *Metrics) RegisterDB(db *sql.DB) error {
	var err error
	m.dbOnce.Do(func() {
		err = m.registry.Register(collectors.NewDBStatsCollector(db, Namespace))
	})
	return err
}

// RequestStarted marks one more in-flight request
func (m *Metrics) RequestStarted() {
	m.httpActive.Inc()
}

// ObserveHTTPRequest records a finished request. route should be the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration, responseSize int) {
	m.httpActive.Dec()
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if responseSize > 0 {
		m.httpResponseSize.WithLabelValues(method, route).Observe(float64(responseSize))
	}
}

// PaymentRecorded counts one committed worker payment
func (m *Metrics) PaymentRecorded(amount decimal.Decimal) {
	m.payments.Inc()
	m.paymentsAmount.Add(amount.InexactFloat64())
}

// AssignmentCreated counts one committed assignment
func (m *Metrics) AssignmentCreated() {
	m.assignments.Inc()
}

// ExpenseRecorded counts one committed expense
func (m *Metrics) ExpenseRecorded(amount decimal.Decimal) {
	m.expenses.Inc()
	m.expensesAmount.Add(amount.InexactFloat64())
}

// SlowQuery counts one statement over the slow threshold. Its signature
// matches logger.WithSlowQueryHook.
func (m *Metrics) SlowQuery(time.Duration) {
	m.slowQueries.Inc()
}
