package service

import (
	"context"

	"github.com/helferherz/karmalama/internal/middleware"
	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
)

// BookingService provides the booking request/decision business logic.
type BookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	progress    *ProgressService
}

// NewBookingService returns a new BookingService.
func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository, progress *ProgressService) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		progress:    progress,
	}
}

// Request places a booking on a listing. The booking starts out requested
// and waits for the listing owner's decision.
func (s *BookingService) Request(ctx context.Context, userID, listingID uint) (*models.Booking, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID == userID {
		return nil, models.NewValidationError("You cannot book your own listing")
	}

	taken, err := s.listingRepo.HasConfirmedBooking(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewUnavailableError("Listing already has a confirmed booking")
	}

	exists, err := s.bookingRepo.ExistsForListingAndUser(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("You already have a booking on this listing")
	}

	booking := &models.Booking{
		ListingID: listingID,
		UserID:    userID,
		Status:    models.BookingStatusRequested,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	middleware.BookingTransitions.WithLabelValues(string(models.BookingStatusRequested), "won").Inc()
	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// Confirm accepts a requested booking. Only the listing owner may decide,
// and the transition is a conditional write so exactly one of two racing
// decisions wins. The requester is awarded the listing's point value.
func (s *BookingService) Confirm(ctx context.Context, actorID, bookingID uint) (*models.Booking, *AwardResult, error) {
	booking, err := s.transition(ctx, actorID, bookingID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, nil, err
	}

	award, err := s.progress.AwardPoints(ctx, booking.UserID, booking.Listing.PointValue, 0)
	if err != nil {
		// The booking is already confirmed at this point. Surface the award
		// failure in the log instead of rolling back the decision.
		middleware.Logger.ErrorContext(ctx, "failed to award points for confirmed booking",
			"booking_id", booking.ID,
			"user_id", booking.UserID,
			"error", err)
		return booking, nil, nil
	}
	return booking, award, nil
}

// Reject declines a requested booking. Only the listing owner may decide.
func (s *BookingService) Reject(ctx context.Context, actorID, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actorID, bookingID, models.BookingStatusRejected)
}

func (s *BookingService) transition(ctx context.Context, actorID, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Listing.UserID != actorID {
		return nil, models.NewUnauthorizedError("Only the listing owner can decide on this booking")
	}
	if !booking.Status.CanTransition(target) {
		return nil, models.NewInvalidTransitionError("Booking is no longer awaiting a decision")
	}

	ok, err := s.bookingRepo.UpdateStatusFrom(ctx, bookingID, models.BookingStatusRequested, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent decision got there first.
		middleware.BookingTransitions.WithLabelValues(string(target), "lost").Inc()
		return nil, models.NewInvalidTransitionError("Booking is no longer awaiting a decision")
	}
	middleware.BookingTransitions.WithLabelValues(string(target), "won").Inc()

	booking.Status = target
	return booking, nil
}

// GetBooking returns the booking by ID when the actor is either the
// requester or the listing owner.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID && booking.Listing.UserID != actorID {
		return nil, models.NewUnauthorizedError("You are not part of this booking")
	}
	return booking, nil
}

// MyBookings returns the bookings the user has placed.
func (s *BookingService) MyBookings(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error) {
	return s.bookingRepo.ListByRequester(ctx, userID, limit, offset)
}

// Assignments returns the bookings placed against the user's own listings.
func (s *BookingService) Assignments(ctx context.Context, ownerID uint, limit, offset int) ([]models.Booking, int64, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, limit, offset)
}
