package metrics

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func TestLedgerCounters(t *testing.T) {
	m := New()

	m.PaymentRecorded(decimal.NewFromInt(100))
	m.PaymentRecorded(decimal.RequireFromString("50.25"))
	m.AssignmentCreated()
	m.ExpenseRecorded(decimal.NewFromInt(1500))

	assert.Equal(t, float64(2), promtest.ToFloat64(m.payments))
	assert.InDelta(t, 150.25, promtest.ToFloat64(m.paymentsAmount), 1e-9)
	assert.Equal(t, float64(1), promtest.ToFloat64(m.assignments))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.expenses))
	assert.Equal(t, float64(1500), promtest.ToFloat64(m.expensesAmount))
}

func TestSlowQuery(t *testing.T) {
	m := New()

	m.SlowQuery(300 * time.Millisecond)
	m.SlowQuery(time.Second)

	assert.Equal(t, float64(2), promtest.ToFloat64(m.slowQueries))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	m.RequestStarted()
	m.RequestStarted()
	assert.Equal(t, float64(2), promtest.ToFloat64(m.httpActive))

	m.ObserveHTTPRequest("POST", "/api/v1/workers/:id/payments", 201, 15*time.Millisecond, 240)
	m.ObserveHTTPRequest("POST", "/api/v1/workers/:id/payments", 404, 2*time.Millisecond, 0)

	assert.Equal(t, float64(0), promtest.ToFloat64(m.httpActive))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/workers/:id/payments", "201")))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/workers/:id/payments", "404")))
	assert.Equal(t, 1, promtest.CollectAndCount(m.httpDuration))
	assert.Equal(t, 1, promtest.CollectAndCount(m.httpResponseSize))
}

func TestHandler_ExposesNamespacedMetrics(t *testing.T) {
	m := New()
	m.PaymentRecorded(decimal.NewFromInt(10))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "sitebuild_worker_payments_total 1")
	assert.Contains(t, text, "go_goroutines")
}

func TestRegisterDB(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := New()
	require.NoError(t, m.RegisterDB(db))
	require.NoError(t, m.RegisterDB(db))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "go_sql_") {
			found = true
			break
		}
	}
	assert.True(t, found, "db stats collector should be registered")
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	a, b := New(), New()
	a.AssignmentCreated()

	assert.Equal(t, float64(1), promtest.ToFloat64(a.assignments))
	assert.Equal(t, float64(0), promtest.ToFloat64(b.assignments))
}
