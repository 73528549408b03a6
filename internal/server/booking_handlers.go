package server

import (
	"github.com/helferherz/karmalama/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequestBooking handles POST /api/listings/:id/bookings
// @Summary Request a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Booking
// @Failure 409 {object} models.ErrorResponse
// @Router /listings/{id}/bookings [post]
func (s *Server) RequestBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, rerr := s.bookingService.Request(c.Context(), userID, listingID)
	if rerr != nil {
		return models.RespondWithError(c, mapServiceError(rerr), rerr)
	}

	// Tell the listing owner about the new request right away.
	s.publishUserEvent(booking.Listing.UserID, EventBookingRequested, map[string]interface{}{
		"booking_id": booking.ID,
		"listing_id": booking.ListingID,
		"requester":  userSummary(booking.User),
		"created_at": nowUTC().Format(timeFormat),
	})

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetBooking handles GET /api/bookings/:id
func (s *Server) GetBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	bookingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, gerr := s.bookingService.GetBooking(c.Context(), userID, bookingID)
	if gerr != nil {
		return models.RespondWithError(c, mapServiceError(gerr), gerr)
	}
	return c.JSON(booking)
}

// GetMyBookings handles GET /api/bookings/my
func (s *Server) GetMyBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	bookings, total, err := s.bookingService.MyBookings(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    total,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetAssignments handles GET /api/bookings/assignments — bookings placed
// against the caller's own listings.
func (s *Server) GetAssignments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	bookings, total, err := s.bookingService.Assignments(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    total,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// ConfirmBooking handles POST /api/bookings/:id/confirm
// @Summary Confirm a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Booking
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bookings/{id}/confirm [post]
func (s *Server) ConfirmBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	bookingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, award, cerr := s.bookingService.Confirm(c.Context(), userID, bookingID)
	if cerr != nil {
		return models.RespondWithError(c, mapServiceError(cerr), cerr)
	}

	payload := map[string]interface{}{
		"booking_id": booking.ID,
		"listing_id": booking.ListingID,
		"status":     booking.Status,
	}
	s.publishUserEvent(booking.UserID, EventBookingConfirmed, payload)
	s.publishUserEvent(booking.Listing.UserID, EventBookingConfirmed, payload)

	if award != nil && award.LeveledUp {
		s.publishUserEvent(booking.UserID, EventLevelUp, map[string]interface{}{
			"old_level": award.OldLevel,
			"new_level": award.NewLevel,
			"points":    award.User.Points,
		})
	}

	resp := fiber.Map{"booking": booking}
	if award != nil {
		resp["awarded_points"] = booking.Listing.PointValue
		resp["requester_level"] = award.NewLevel
	}
	return c.JSON(resp)
}

// RejectBooking handles POST /api/bookings/:id/reject
func (s *Server) RejectBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	bookingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, rerr := s.bookingService.Reject(c.Context(), userID, bookingID)
	if rerr != nil {
		return models.RespondWithError(c, mapServiceError(rerr), rerr)
	}

	payload := map[string]interface{}{
		"booking_id": booking.ID,
		"listing_id": booking.ListingID,
		"status":     booking.Status,
	}
	s.publishUserEvent(booking.UserID, EventBookingRejected, payload)
	s.publishUserEvent(booking.Listing.UserID, EventBookingRejected, payload)

	return c.JSON(fiber.Map{"booking": booking})
}
