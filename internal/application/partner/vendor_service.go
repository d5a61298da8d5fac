package partner

import (
	"context"

	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/activity"
	"github.com/sitebuild/backend/internal/domain/partner"
	"github.com/sitebuild/backend/internal/domain/shared"
)

// VendorService handles vendor operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	scope      txn.Scope
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, scope txn.Scope) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		scope:      scope,
	}
}

// Create creates a new vendor, rated 5 unless a rating is given
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	v, err := partner.NewVendor(req.Name)
	if err != nil {
		return nil, err
	}
	err = v.Apply(partner.VendorPatch{
		Category: &req.Category,
		Contact:  &req.Contact,
		Rating:   req.Rating,
	})
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if err := repos.Vendors().Save(ctx, v); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityVendor, v.ID, activity.ActionCreated, v.Name)
	})
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(v)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id int64) (*VendorResponse, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(v)
	return &response, nil
}

// List retrieves vendors
func (s *VendorService) List(ctx context.Context, filter shared.Filter) ([]VendorResponse, error) {
	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToVendorResponses(vendors), nil
}

// Update applies a partial update
func (s *VendorService) Update(ctx context.Context, id int64, req UpdateVendorRequest) (*VendorResponse, error) {
	var v *partner.Vendor
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		found, err := repos.Vendors().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		err = found.Apply(partner.VendorPatch{
			Name:     req.Name,
			Category: req.Category,
			Contact:  req.Contact,
			Rating:   req.Rating,
		})
		if err != nil {
			return err
		}
		if err := repos.Vendors().Save(ctx, found); err != nil {
			return err
		}
		v = found
		return txn.Log(ctx, repos, activity.EntityVendor, v.ID, activity.ActionUpdated, "")
	})
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(v)
	return &response, nil
}

// Delete removes a vendor. Expenses booked against it keep their amounts but
// lose the vendor reference.
func (s *VendorService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Vendors().FindByID(ctx, id); err != nil {
			return err
		}
		if err := repos.Expenses().DetachVendor(ctx, id); err != nil {
			return err
		}
		if err := repos.Vendors().Delete(ctx, id); err != nil {
			return err
		}
		return txn.Log(ctx, repos, activity.EntityVendor, id, activity.ActionDeleted, "")
	})
}
