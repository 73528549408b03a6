package service

import (
	"context"

	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
	"github.com/helferherz/karmalama/internal/validation"
)

// ListingService provides listing business logic.
type ListingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

// NewListingService returns a new ListingService.
func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

// ListingInput carries the writable listing fields.
type ListingInput struct {
	Name        string
	Description string
	Price       float64
	Category    models.ListingCategory
	PointValue  int
}

// GetListing returns the listing by ID.
func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// BrowseListings returns listings matching the filter along with the total
// count for pagination.
func (s *ListingService) BrowseListings(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]models.Listing, int64, error) {
	return s.listingRepo.List(ctx, filter, limit, offset)
}

// CreateListing creates a listing owned by the given user.
func (s *ListingService) CreateListing(ctx context.Context, ownerID uint, input ListingInput) (*models.Listing, error) {
	if errs := validation.ValidateListing(input.Name, input.Description, input.Price, input.Category); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}
	if input.PointValue < 0 {
		return nil, models.NewInvalidAmountError("Point value must not be negative")
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	listing := &models.Listing{
		UserID:      ownerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		PointValue:  input.PointValue,
	}
	if listing.PointValue == 0 {
		listing.PointValue = models.DefaultListingPointValue
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// UpdateListing updates a listing. Only the owner or an admin may change it.
func (s *ListingService) UpdateListing(ctx context.Context, actorID uint, isAdmin bool, listingID uint, input ListingInput) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != actorID && !isAdmin {
		return nil, models.NewUnauthorizedError("You can only update your own listings")
	}

	if errs := validation.ValidateListing(input.Name, input.Description, input.Price, input.Category); len(errs) > 0 {
		return nil, models.NewFieldValidationError(errs)
	}
	if input.PointValue < 0 {
		return nil, models.NewInvalidAmountError("Point value must not be negative")
	}

	listing.Name = input.Name
	listing.Description = input.Description
	listing.Price = input.Price
	listing.Category = input.Category
	if input.PointValue > 0 {
		listing.PointValue = input.PointValue
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes a listing and its bookings. Only the owner or an
// admin may delete it.
func (s *ListingService) DeleteListing(ctx context.Context, actorID uint, isAdmin bool, listingID uint) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.UserID != actorID && !isAdmin {
		return models.NewUnauthorizedError("You can only delete your own listings")
	}
	return s.listingRepo.Delete(ctx, listingID)
}
