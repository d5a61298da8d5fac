// Package activity records a write-only trail of changes to domain records.
package activity

import (
	"context"
	"time"
)

// Entity types
const (
	EntityProject    = "project"
	EntityWorker     = "worker"
	EntityVendor     = "vendor"
	EntityInventory  = "inventory_item"
	EntityAssignment = "assignment"
	EntityPayment    = "worker_payment"
	EntityExpense    = "expense"
)

// Actions
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionAssigned = "assigned"
	ActionHours    = "hours_added"
	ActionPaid     = "paid"
)

// Entry is one row of the activity log
type Entry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_activity_entity,priority:1"`
	EntityID   int64     `gorm:"not null;index:idx_activity_entity,priority:2"`
	Action     string    `gorm:"type:varchar(50);not null"`
	Details    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "activity_log"
}

// NewEntry stamps an entry with the current time
func NewEntry(entityType string, entityID int64, action, details string) *Entry {
	return &Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		OccurredAt: time.Now(),
	}
}

// Repository appends activity entries
type Repository interface {
	Append(ctx context.Context, e *Entry) error
}
