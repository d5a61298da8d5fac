package project

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewProject_Defaults(t *testing.T) {
	p, err := NewProject("  Lagos Luxury Apartments ")
	require.NoError(t, err)

	assert.Equal(t, "Lagos Luxury Apartments", p.Name)
	assert.Equal(t, StatusPlanning, p.Status)
	assert.Equal(t, 0, p.ProgressPercent)
	assert.True(t, p.Spent.IsZero())
	assert.True(t, p.Budget.IsZero())
	assert.True(t, p.IsNew())
}

func TestNewProject_RequiresName(t *testing.T) {
	_, err := NewProject("   ")
	require.Error(t, err)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, shared.CodeValidation, de.Code)
	assert.Equal(t, "name", de.Field)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Planning", StatusPlanning, true},
		{"active", StatusActive, true},
		{"On Hold", StatusOnHold, true},
		{"on_hold", StatusOnHold, true},
		{"COMPLETED", StatusCompleted, true},
		{"Cancelled", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if !tt.ok {
				assert.True(t, errors.Is(err, shared.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProject_Apply(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("applies every provided field", func(t *testing.T) {
		p, _ := NewProject("Abuja Office Complex")
		err := p.Apply(Patch{
			Location:        ptr("Abuja"),
			Status:          ptr(StatusActive),
			Budget:          ptr(decimal.NewFromInt(850000000)),
			ProgressPercent: ptr(38),
			Units:           ptr(12),
			StartDate:       &start,
			EndDate:         &end,
		})
		require.NoError(t, err)

		assert.Equal(t, "Abuja", p.Location)
		assert.Equal(t, StatusActive, p.Status)
		assert.True(t, p.Budget.Equal(decimal.NewFromInt(850000000)))
		assert.Equal(t, 38, p.ProgressPercent)
		assert.True(t, p.RemainingBudget().Equal(decimal.NewFromInt(850000000)))
		assert.True(t, p.IsActive())
	})

	tests := []struct {
		name  string
		patch Patch
		field string
	}{
		{"empty name", Patch{Name: ptr("")}, "name"},
		{"zero budget", Patch{Budget: ptr(decimal.Zero)}, "budget"},
		{"negative budget", Patch{Budget: ptr(decimal.NewFromInt(-5))}, "budget"},
		{"progress over 100", Patch{ProgressPercent: ptr(101)}, "progress_percent"},
		{"progress below 0", Patch{ProgressPercent: ptr(-1)}, "progress_percent"},
		{"negative units", Patch{Units: ptr(-2)}, "units"},
		{"unknown status", Patch{Status: ptr(Status("Archived"))}, "status"},
		{"end before start", Patch{StartDate: &end, EndDate: &start}, "end_date"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name+" without mutating", func(t *testing.T) {
			p, _ := NewProject("Original")
			before := *p

			err := p.Apply(tt.patch)

			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, before, *p)
		})
	}

	t.Run("end date checked against stored start date", func(t *testing.T) {
		p, _ := NewProject("Ikoyi Towers")
		require.NoError(t, p.Apply(Patch{StartDate: &end}))

		err := p.Apply(Patch{EndDate: &start})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Nil(t, p.EndDate)
	})
}

func TestNewExpense(t *testing.T) {
	t.Run("valid expense defaults date to today", func(t *testing.T) {
		e, err := NewExpense(1, nil, " Materials ", decimal.NewFromInt(4500), time.Time{}, "cement")
		require.NoError(t, err)

		assert.Equal(t, "Materials", e.Category)
		assert.False(t, e.Date.IsZero())
		assert.Nil(t, e.VendorID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(1, nil, "Materials", decimal.Zero, time.Now(), "")
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "amount", de.Field)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewExpense(1, nil, "", decimal.NewFromInt(10), time.Now(), "")
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "category", de.Field)
	})
}

func TestDependents_Any(t *testing.T) {
	assert.False(t, Dependents{}.Any())
	assert.True(t, Dependents{Assignments: 1}.Any())
	assert.True(t, Dependents{Expenses: 2}.Any())
}
