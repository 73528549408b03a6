package repository

import (
	"context"

	"github.com/helferherz/karmalama/internal/models"

	"gorm.io/gorm"
)

// BookingRepository provides access to booking storage.
type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	// ListByRequester returns bookings placed by the given user.
	ListByRequester(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error)
	// ListByOwner returns bookings placed against listings the given
	// user owns.
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Booking, int64, error)
	// UpdateStatusFrom moves the booking from one status to another with
	// a conditional write. It reports false when the booking was no
	// longer in the expected status, which is how concurrent transitions
	// lose the race.
	UpdateStatusFrom(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error)
	// ExistsForListingAndUser reports whether the user already has a
	// non-rejected booking on the listing.
	ExistsForListingAndUser(ctx context.Context, listingID, userID uint) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a new BookingRepository implementation.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Booking", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookingRepository) ListByRequester(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var bookings []models.Booking
	err := query.Preload("Listing").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Booking, int64, error) {
	sub := r.db.WithContext(ctx).Model(&models.Listing{}).Select("id").Where("user_id = ?", ownerID)
	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("listing_id IN (?)", sub)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var bookings []models.Booking
	err := query.Preload("Listing").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepository) ExistsForListingAndUser(ctx context.Context, listingID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("listing_id = ? AND user_id = ? AND status <> ?", listingID, userID, models.BookingStatusRejected).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
