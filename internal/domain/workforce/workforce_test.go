package workforce

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Field
}

func TestNewWorker(t *testing.T) {
	t.Run("valid worker starts unpaid", func(t *testing.T) {
		w, err := NewWorker("Chinedu Okoro", "Site Manager", decimal.NewFromInt(8500), "+234 803 123 4567")
		require.NoError(t, err)

		assert.Equal(t, "Site Manager", w.Role)
		assert.True(t, w.TotalPaid.IsZero())
		assert.Nil(t, w.LastPaymentDate)
	})

	tests := []struct {
		name  string
		wName string
		role  string
		rate  decimal.Decimal
		field string
	}{
		{"missing name", "", "Mason", decimal.NewFromInt(10), "name"},
		{"missing role", "Amaka", " ", decimal.NewFromInt(10), "role"},
		{"zero rate", "Amaka", "Mason", decimal.Zero, "hourly_rate"},
		{"negative rate", "Amaka", "Mason", decimal.NewFromInt(-3), "hourly_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorker(tt.wName, tt.role, tt.rate, "")
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestWorker_ApplyLeavesLedgerFieldsAlone(t *testing.T) {
	w, err := NewWorker("Tunde", "Electrician", decimal.NewFromInt(45), "")
	require.NoError(t, err)
	w.TotalPaid = decimal.NewFromInt(300)

	rate := decimal.NewFromInt(60)
	require.NoError(t, w.Apply(WorkerPatch{HourlyRate: &rate}))

	assert.True(t, w.HourlyRate.Equal(rate))
	assert.True(t, w.TotalPaid.Equal(decimal.NewFromInt(300)))
}

func TestNewAssignment_SnapshotsRate(t *testing.T) {
	w, err := NewWorker("Tunde", "Electrician", decimal.NewFromInt(45), "")
	require.NoError(t, err)
	w.ID = 3

	a, err := NewAssignment(w, 9, decimal.NewFromInt(10))
	require.NoError(t, err)

	rate := decimal.NewFromInt(60)
	require.NoError(t, w.Apply(WorkerPatch{HourlyRate: &rate}))

	assert.Equal(t, int64(3), a.WorkerID)
	assert.Equal(t, int64(9), a.ProjectID)
	assert.True(t, a.AssignedRate.Equal(decimal.NewFromInt(45)))
	assert.True(t, a.LabourCost().Equal(decimal.NewFromInt(450)))
}

func TestNewAssignment_RejectsNegativeHours(t *testing.T) {
	w, _ := NewWorker("Tunde", "Electrician", decimal.NewFromInt(45), "")
	_, err := NewAssignment(w, 1, decimal.NewFromInt(-1))
	assert.Equal(t, "hours_worked", fieldOf(t, err))
}

func TestValidateHours(t *testing.T) {
	assert.NoError(t, ValidateHours(decimal.NewFromFloat(2.5)))
	assert.True(t, errors.Is(ValidateHours(decimal.Zero), shared.ErrValidation))
}

func TestNewPayment(t *testing.T) {
	t.Run("normalises date to midnight UTC", func(t *testing.T) {
		when := time.Date(2024, 3, 9, 17, 45, 0, 0, time.FixedZone("WAT", 3600))
		p, err := NewPayment(1, decimal.NewFromInt(100), when, " March wages ")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), p.PaymentDate)
		assert.Equal(t, "March wages", p.Description)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amt := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
			_, err := NewPayment(1, amt, time.Now(), "")
			assert.Equal(t, "amount", fieldOf(t, err))
		}
	})
}

func TestBuildRoster(t *testing.T) {
	workers := []Worker{
		{BaseEntity: shared.BaseEntity{ID: 2}, Name: "Ngozi"},
		{BaseEntity: shared.BaseEntity{ID: 1}, Name: "Chinedu"},
	}
	links := []AssignmentLink{
		{WorkerID: 1, ProjectID: 10, ProjectName: "Lagos Luxury Apartments"},
		{WorkerID: 1, ProjectID: 10, ProjectName: "Lagos Luxury Apartments"},
		{WorkerID: 1, ProjectID: 11, ProjectName: "Abuja Office Complex"},
		{WorkerID: 99, ProjectID: 12, ProjectName: "orphan"},
	}

	roster := BuildRoster(workers, links)

	require.Len(t, roster, 2)
	assert.Equal(t, "Ngozi", roster[0].Worker.Name)
	assert.NotNil(t, roster[0].Projects)
	assert.Empty(t, roster[0].Projects)

	assert.Equal(t, []ProjectRef{
		{ID: 10, Name: "Lagos Luxury Apartments"},
		{ID: 11, Name: "Abuja Office Complex"},
	}, roster[1].Projects)
}

func TestBuildRoster_Empty(t *testing.T) {
	roster := BuildRoster(nil, nil)
	assert.NotNil(t, roster)
	assert.Empty(t, roster)
}
