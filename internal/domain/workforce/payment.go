package workforce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// Payment is an append-only ledger row. Writing one must move the worker's
// running total in the same transaction.
type Payment struct {
	shared.BaseEntity
	WorkerID    int64           `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "worker_payments"
}

// NewPayment validates a payment. A zero date means today.
func NewPayment(workerID int64, amount decimal.Decimal, paymentDate time.Time, description string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "amount must be greater than 0")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		WorkerID:    workerID,
		Amount:      amount,
		PaymentDate: time.Date(paymentDate.Year(), paymentDate.Month(), paymentDate.Day(), 0, 0, 0, 0, time.UTC),
		Description: strings.TrimSpace(description),
	}, nil
}
