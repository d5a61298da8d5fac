package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Expense is a cost booked against a project, optionally paid to a vendor.
// Recording one adds its amount to the project's spent total.
type Expense struct {
	shared.BaseEntity
	ProjectID int64           `gorm:"not null;index"`
	VendorID  *int64          `gorm:"index"`
	Category  string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date      time.Time       `gorm:"type:date;not null"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense validates and builds an expense. A zero date means today.
func NewExpense(projectID int64, vendorID *int64, category string, amount decimal.Decimal, date time.Time, notes string) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewValidationError("category", "category is required")
	}
	if len(category) > 100 {
		return nil, shared.NewValidationError("category", "category cannot exceed 100 characters")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "amount must be greater than 0")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Expense{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		VendorID:   vendorID,
		Category:   category,
		Amount:     amount,
		Date:       truncateToDate(date),
		Notes:      strings.TrimSpace(notes),
	}, nil
}
