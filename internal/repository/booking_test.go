package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/helferherz/karmalama/internal/database"
	"github.com/helferherz/karmalama/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func seedListing(t *testing.T, db *gorm.DB) *models.Listing {
	owner := &models.User{
		Email: "owner@example.com", Password: "x",
		Name: "Owner", Surname: "One", Phone: "123", Birthday: "1990-01-01",
		Postal: "1000", Area: "North", Level: 1,
	}
	require.NoError(t, db.Create(owner).Error)

	listing := &models.Listing{
		UserID:      owner.ID,
		Name:        "Rake the leaves",
		Description: "Front yard, about an hour",
		Category:    models.ListingCategoryGardening,
		PointValue:  15,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func seedRequester(t *testing.T, db *gorm.DB) *models.User {
	user := &models.User{
		Email: "helper@example.com", Password: "x",
		Name: "Helper", Surname: "Two", Phone: "456", Birthday: "1992-02-02",
		Postal: "2000", Area: "South", Level: 1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db)
	requester := seedRequester(t, db)

	booking := &models.Booking{
		ListingID: listing.ID,
		UserID:    requester.ID,
		Status:    models.BookingStatusRequested,
	}
	require.NoError(t, repo.Create(ctx, booking))
	assert.NotZero(t, booking.ID)

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRequested, got.Status)
	assert.Equal(t, listing.Name, got.Listing.Name)
	assert.Equal(t, requester.Email, got.User.Email)

	_, err = repo.GetByID(ctx, 9999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestBookingRepository_UpdateStatusFrom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db)
	requester := seedRequester(t, db)
	booking := &models.Booking{ListingID: listing.ID, UserID: requester.ID, Status: models.BookingStatusRequested}
	require.NoError(t, repo.Create(ctx, booking))

	ok, err := repo.UpdateStatusFrom(ctx, booking.ID, models.BookingStatusRequested, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second decision finds the booking already moved on and loses.
	ok, err = repo.UpdateStatusFrom(ctx, booking.ID, models.BookingStatusRequested, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
}

func TestBookingRepository_ExistsForListingAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db)
	requester := seedRequester(t, db)

	exists, err := repo.ExistsForListingAndUser(ctx, listing.ID, requester.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	booking := &models.Booking{ListingID: listing.ID, UserID: requester.ID, Status: models.BookingStatusRequested}
	require.NoError(t, repo.Create(ctx, booking))

	exists, err = repo.ExistsForListingAndUser(ctx, listing.ID, requester.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A rejected booking does not block a fresh request.
	_, err = repo.UpdateStatusFrom(ctx, booking.ID, models.BookingStatusRequested, models.BookingStatusRejected)
	require.NoError(t, err)

	exists, err = repo.ExistsForListingAndUser(ctx, listing.ID, requester.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBookingRepository_Listings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db)
	requester := seedRequester(t, db)
	booking := &models.Booking{ListingID: listing.ID, UserID: requester.ID, Status: models.BookingStatusRequested}
	require.NoError(t, repo.Create(ctx, booking))

	mine, total, err := repo.ListByRequester(ctx, requester.ID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, listing.Name, mine[0].Listing.Name)

	assignments, total, err := repo.ListByOwner(ctx, listing.UserID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, assignments, 1)
	assert.Equal(t, requester.ID, assignments[0].UserID)

	// The requester has no assignments of their own.
	assignments, total, err = repo.ListByOwner(ctx, requester.ID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, assignments)
}
