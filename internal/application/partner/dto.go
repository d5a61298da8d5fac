package partner

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/domain/partner"
)

// CreateVendorRequest represents a request to create a new vendor
type CreateVendorRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Category string `json:"category" binding:"max=100"`
	Contact  string `json:"contact" binding:"max=200"`
	Rating   *int   `json:"rating"`
}

// UpdateVendorRequest represents a partial update
type UpdateVendorRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Category *string `json:"category" binding:"omitempty,max=100"`
	Contact  *string `json:"contact" binding:"omitempty,max=200"`
	Rating   *int    `json:"rating"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Contact   string          `json:"contact"`
	Rating    int             `json:"rating"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Category:  v.Category,
		Contact:   v.Contact,
		Rating:    v.Rating,
		TotalPaid: v.TotalPaid,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ToVendorResponses converts a slice of vendors
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	return out
}
