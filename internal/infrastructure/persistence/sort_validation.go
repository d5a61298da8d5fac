package persistence

import (
	"strings"

	"github.com/sitebuild/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.ToLower(strings.TrimSpace(sortField))
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields present on every stored entity
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = withCommon(
	"name", "status", "budget", "spent", "progress_percent", "start_date", "end_date", "location",
)

// WorkerSortFields contains allowed sort fields for workers
var WorkerSortFields = withCommon("name", "role", "hourly_rate", "total_paid", "last_payment_date")

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = withCommon("name", "category", "rating", "total_paid")

// InventorySortFields contains allowed sort fields for inventory items
var InventorySortFields = withCommon("name", "category", "quantity", "unit_price", "min_stock")

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = withCommon("date", "amount", "category")

// PaymentSortFields contains allowed sort fields for worker payments
var PaymentSortFields = withCommon("payment_date", "amount")

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for f := range CommonSortFields {
		m[f] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// applyFilter orders by the whitelisted field, breaks ties on id in the same
// direction, and pages when the filter asks for it.
func applyFilter(db *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)

	db = db.Order(field + " " + dir)
	if field != "id" {
		db = db.Order("id " + dir)
	}
	if filter.PageSize > 0 {
		db = db.Limit(filter.PageSize).Offset(filter.Offset())
	}
	return db
}
