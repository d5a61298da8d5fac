//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/app"
	partnerapp "github.com/sitebuild/backend/internal/application/partner"
	projectapp "github.com/sitebuild/backend/internal/application/project"
	workforceapp "github.com/sitebuild/backend/internal/application/workforce"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*app.Services, *TestDB) {
	t.Helper()
	tdb := NewTestDB(t)
	return app.NewServices(tdb.DB, nil, "NGN"), tdb
}

func TestMigrations_DownThenUp(t *testing.T) {
	tdb := NewTestDB(t)
	m := tdb.Migrator(t)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)

	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, m.Up())
	assert.Zero(t, testutil.CountRows(t, tdb.DB, "projects", ""))
}

func TestConcurrentPayments_TotalEqualsLedgerSum(t *testing.T) {
	svc, tdb := newServices(t)
	ctx := context.Background()

	w, err := svc.Workers.Create(ctx, workforceapp.CreateWorkerRequest{
		Name: "Ngozi Umeh", Role: "Carpenter", HourlyRate: decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	const payers = 20
	var wg sync.WaitGroup
	errs := make(chan error, payers)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := fmt.Sprintf("2026-04-%02d", i%28+1)
			_, err := svc.Ledger.RecordPayment(ctx, w.ID, workforceapp.RecordPaymentRequest{
				Amount:      decimal.RequireFromString("150.25"),
				PaymentDate: &date,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	worker, err := svc.Workers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, worker.TotalPaid.Equal(decimal.RequireFromString("3005")), "total_paid = %s", worker.TotalPaid)
	assert.NotNil(t, worker.LastPaymentDate)

	var sum decimal.Decimal
	require.NoError(t, tdb.DB.Raw("SELECT COALESCE(SUM(amount), 0) FROM worker_payments WHERE worker_id = ?", w.ID).Scan(&sum).Error)
	assert.True(t, sum.Equal(worker.TotalPaid))
	assert.EqualValues(t, payers, testutil.CountRows(t, tdb.DB, "worker_payments", "worker_id = ?", w.ID))
}

func TestConcurrentUpdatesKeepLedgerTotals(t *testing.T) {
	svc, tdb := newServices(t)
	ctx := context.Background()

	w, err := svc.Workers.Create(ctx, workforceapp.CreateWorkerRequest{
		Name: "Kelechi Obi", Role: "Electrician", HourlyRate: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	p, err := svc.Projects.Create(ctx, projectapp.CreateProjectRequest{Name: "Jabi Lakeside"})
	require.NoError(t, err)
	v, err := svc.Vendors.Create(ctx, partnerapp.CreateVendorRequest{Name: "Lafarge Depot"})
	require.NoError(t, err)

	const rounds = 15
	var wg sync.WaitGroup
	errs := make(chan error, rounds*6)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- fn()
		}()
	}
	for i := 0; i < rounds; i++ {
		rate := decimal.NewFromInt(int64(2500 + i))
		progress := i
		rating := i%5 + 1
		run(func() error {
			_, err := svc.Ledger.RecordPayment(ctx, w.ID, workforceapp.RecordPaymentRequest{Amount: decimal.NewFromInt(100)})
			return err
		})
		run(func() error {
			_, err := svc.Workers.Update(ctx, w.ID, workforceapp.UpdateWorkerRequest{HourlyRate: &rate})
			return err
		})
		run(func() error {
			_, err := svc.Expenses.Record(ctx, p.ID, projectapp.RecordExpenseRequest{
				VendorID: &v.ID, Category: "Materials", Amount: decimal.NewFromInt(40),
			})
			return err
		})
		run(func() error {
			_, err := svc.Projects.Update(ctx, p.ID, projectapp.UpdateProjectRequest{ProgressPercent: &progress})
			return err
		})
		run(func() error {
			_, err := svc.Vendors.Update(ctx, v.ID, partnerapp.UpdateVendorRequest{Rating: &rating})
			return err
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sum := func(query string, args ...any) decimal.Decimal {
		var total decimal.Decimal
		require.NoError(t, tdb.DB.Raw(query, args...).Scan(&total).Error)
		return total
	}

	worker, err := svc.Workers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, worker.TotalPaid.Equal(decimal.NewFromInt(100*rounds)), "total_paid = %s", worker.TotalPaid)
	assert.True(t, worker.TotalPaid.Equal(sum("SELECT COALESCE(SUM(amount), 0) FROM worker_payments WHERE worker_id = ?", w.ID)))
	assert.NotNil(t, worker.LastPaymentDate)

	proj, err := svc.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, proj.Spent.Equal(decimal.NewFromInt(40*rounds)), "spent = %s", proj.Spent)
	assert.True(t, proj.Spent.Equal(sum("SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE project_id = ?", p.ID)))

	vendor, err := svc.Vendors.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, vendor.TotalPaid.Equal(decimal.NewFromInt(40*rounds)), "total_paid = %s", vendor.TotalPaid)
}

func TestConcurrentHours_Accumulate(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, projectapp.CreateProjectRequest{Name: "Maitama Court"})
	require.NoError(t, err)
	w, err := svc.Workers.Create(ctx, workforceapp.CreateWorkerRequest{
		Name: "Ibrahim Sani", Role: "Welder", HourlyRate: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)
	a, err := svc.Ledger.Assign(ctx, w.ID, workforceapp.AssignWorkerRequest{ProjectID: p.ID})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Ledger.AddHours(ctx, a.ID, workforceapp.AddHoursRequest{Hours: decimal.RequireFromString("1.5")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assignments, err := svc.Ledger.ListAssignments(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].HoursWorked.Equal(decimal.NewFromInt(15)))
	assert.True(t, assignments[0].LabourCost.Equal(decimal.NewFromInt(45000)))
}

func TestConcurrentExpenses_SpendMatchesRows(t *testing.T) {
	svc, tdb := newServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, projectapp.CreateProjectRequest{Name: "Victoria Island Tower"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Expenses.Record(ctx, p.ID, projectapp.RecordExpenseRequest{
				Category: "Materials", Amount: decimal.NewFromInt(250),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Spent.Equal(decimal.NewFromInt(3000)))
	assert.EqualValues(t, 12, testutil.CountRows(t, tdb.DB, "expenses", "project_id = ?", p.ID))
}

func TestForeignKeys(t *testing.T) {
	svc, tdb := newServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, projectapp.CreateProjectRequest{Name: "Asokoro Flats"})
	require.NoError(t, err)
	w, err := svc.Workers.Create(ctx, workforceapp.CreateWorkerRequest{
		Name: "Femi Ojo", Role: "Plumber", HourlyRate: decimal.NewFromInt(1800),
	})
	require.NoError(t, err)
	_, err = svc.Ledger.Assign(ctx, w.ID, workforceapp.AssignWorkerRequest{ProjectID: p.ID})
	require.NoError(t, err)
	_, err = svc.Ledger.RecordPayment(ctx, w.ID, workforceapp.RecordPaymentRequest{Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	t.Run("project with assignments is protected", func(t *testing.T) {
		err := svc.Projects.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrConflict)

		err = tdb.DB.Exec("DELETE FROM projects WHERE id = ?", p.ID).Error
		assert.Error(t, err)
	})

	t.Run("assigning to a missing project", func(t *testing.T) {
		_, err := svc.Ledger.Assign(ctx, w.ID, workforceapp.AssignWorkerRequest{ProjectID: p.ID + 1000})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("worker delete cascades", func(t *testing.T) {
		require.NoError(t, svc.Workers.Delete(ctx, w.ID))
		assert.Zero(t, testutil.CountRows(t, tdb.DB, "project_worker_assignments", "worker_id = ?", w.ID))
		assert.Zero(t, testutil.CountRows(t, tdb.DB, "worker_payments", "worker_id = ?", w.ID))
		require.NoError(t, svc.Projects.Delete(ctx, p.ID))
	})
}

func TestDashboard_OnPostgres(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	budget := decimal.NewFromInt(2000)
	p, err := svc.Projects.Create(ctx, projectapp.CreateProjectRequest{Name: "Ikeja Mall", Status: "Active", Budget: &budget})
	require.NoError(t, err)
	_, err = svc.Expenses.Record(ctx, p.ID, projectapp.RecordExpenseRequest{Category: "Labour", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	dash, err := svc.Dashboard.Compute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dash.Projects.Total)
	assert.EqualValues(t, 1, dash.Projects.ByStatus["Active"])
	assert.True(t, dash.Projects.BudgetUtilization.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "NGN", dash.Currency)
}
