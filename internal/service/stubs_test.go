package service

import (
	"context"

	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
)

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	updateProgressFn func(context.Context, uint, int, int, int, int) (bool, error)
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateProgress(ctx context.Context, id uint, fromPoints, points, level, hoursWorked int) (bool, error) {
	return s.updateProgressFn(ctx, id, fromPoints, points, level, hoursWorked)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{Level: 1}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		updateProgressFn: func(context.Context, uint, int, int, int, int) (bool, error) {
			return true, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
		listFn:   func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type levelRepoStub struct {
	listFn    func(context.Context) ([]models.Level, error)
	tableFn   func(context.Context) (*models.LevelTable, error)
	replaceFn func(context.Context, []models.Level) error
}

func (s *levelRepoStub) List(ctx context.Context) ([]models.Level, error) { return s.listFn(ctx) }
func (s *levelRepoStub) Table(ctx context.Context) (*models.LevelTable, error) {
	return s.tableFn(ctx)
}
func (s *levelRepoStub) Replace(ctx context.Context, levels []models.Level) error {
	return s.replaceFn(ctx, levels)
}

func defaultLevelRepo() *levelRepoStub {
	return &levelRepoStub{
		listFn: func(context.Context) ([]models.Level, error) { return models.DefaultLevels(), nil },
		tableFn: func(context.Context) (*models.LevelTable, error) {
			return models.NewLevelTable(models.DefaultLevels()), nil
		},
		replaceFn: func(context.Context, []models.Level) error { return nil },
	}
}

type listingRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.Listing, error)
	listFn                func(context.Context, repository.ListingFilter, int, int) ([]models.Listing, int64, error)
	createFn              func(context.Context, *models.Listing) error
	updateFn              func(context.Context, *models.Listing) error
	deleteFn              func(context.Context, uint) error
	hasConfirmedBookingFn func(context.Context, uint) (bool, error)
}

func (s *listingRepoStub) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	return s.getByIDFn(ctx, id)
}
func (s *listingRepoStub) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]models.Listing, int64, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *listingRepoStub) Create(ctx context.Context, listing *models.Listing) error {
	return s.createFn(ctx, listing)
}
func (s *listingRepoStub) Update(ctx context.Context, listing *models.Listing) error {
	return s.updateFn(ctx, listing)
}
func (s *listingRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *listingRepoStub) HasConfirmedBooking(ctx context.Context, listingID uint) (bool, error) {
	return s.hasConfirmedBookingFn(ctx, listingID)
}

func noopListingRepo() *listingRepoStub {
	return &listingRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Listing, error) {
			return &models.Listing{ID: 1, UserID: 1, PointValue: 10}, nil
		},
		listFn: func(context.Context, repository.ListingFilter, int, int) ([]models.Listing, int64, error) {
			return nil, 0, nil
		},
		createFn:              func(context.Context, *models.Listing) error { return nil },
		updateFn:              func(context.Context, *models.Listing) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		hasConfirmedBookingFn: func(context.Context, uint) (bool, error) { return false, nil },
	}
}

type bookingRepoStub struct {
	getByIDFn                 func(context.Context, uint) (*models.Booking, error)
	createFn                  func(context.Context, *models.Booking) error
	listByRequesterFn         func(context.Context, uint, int, int) ([]models.Booking, int64, error)
	listByOwnerFn             func(context.Context, uint, int, int) ([]models.Booking, int64, error)
	updateStatusFromFn        func(context.Context, uint, models.BookingStatus, models.BookingStatus) (bool, error)
	existsForListingAndUserFn func(context.Context, uint, uint) (bool, error)
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	return s.createFn(ctx, booking)
}
func (s *bookingRepoStub) ListByRequester(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error) {
	return s.listByRequesterFn(ctx, userID, limit, offset)
}
func (s *bookingRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Booking, int64, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *bookingRepoStub) UpdateStatusFrom(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	return s.updateStatusFromFn(ctx, id, from, to)
}
func (s *bookingRepoStub) ExistsForListingAndUser(ctx context.Context, listingID, userID uint) (bool, error) {
	return s.existsForListingAndUserFn(ctx, listingID, userID)
}

func noopBookingRepo() *bookingRepoStub {
	return &bookingRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Booking, error) {
			return &models.Booking{ID: 1, Status: models.BookingStatusRequested}, nil
		},
		createFn: func(context.Context, *models.Booking) error { return nil },
		listByRequesterFn: func(context.Context, uint, int, int) ([]models.Booking, int64, error) {
			return nil, 0, nil
		},
		listByOwnerFn: func(context.Context, uint, int, int) ([]models.Booking, int64, error) {
			return nil, 0, nil
		},
		updateStatusFromFn: func(context.Context, uint, models.BookingStatus, models.BookingStatus) (bool, error) {
			return true, nil
		},
		existsForListingAndUserFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}
