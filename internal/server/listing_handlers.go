package server

import (
	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
	"github.com/helferherz/karmalama/internal/service"

	"github.com/gofiber/fiber/v2"
)

type listingRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	PointValue  int     `json:"point_value"`
}

func (r listingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    models.ListingCategory(r.Category),
		PointValue:  r.PointValue,
	}
}

// GetListings handles GET /api/listings
// @Summary Browse listings
// @Tags listings
// @Produce json
// @Param category query string false "Filter by category"
// @Param q query string false "Search in name and description"
// @Success 200 {object} object{listings=[]models.Listing,total=int}
// @Router /listings [get]
func (s *Server) GetListings(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	filter := repository.ListingFilter{
		Category: models.ListingCategory(c.Query("category")),
		Search:   c.Query("q"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown listing category"))
	}

	listings, total, err := s.listingService.BrowseListings(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"total":    total,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetListing handles GET /api/listings/:id
func (s *Server) GetListing(c *fiber.Ctx) error {
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, gerr := s.listingService.GetListing(c.Context(), listingID)
	if gerr != nil {
		return models.RespondWithError(c, mapServiceError(gerr), gerr)
	}
	return c.JSON(listing)
}

// CreateListing handles POST /api/listings
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Listing
// @Failure 400 {object} models.ErrorResponse
// @Router /listings [post]
func (s *Server) CreateListing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req listingRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.CreateListing(c.Context(), userID, req.toInput())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// AdminCreateListing handles POST /api/admin/listings. Admins may create a
// listing on behalf of any user via the user_id field.
func (s *Server) AdminCreateListing(c *fiber.Ctx) error {
	var req struct {
		listingRequest
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ownerID := req.UserID
	if ownerID == 0 {
		ownerID = c.Locals("userID").(uint)
	}

	listing, err := s.listingService.CreateListing(c.Context(), ownerID, req.toInput())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateListing handles PUT /api/listings/:id and PUT /api/admin/listings/:id
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req listingRequest
	if berr := c.BodyParser(&req); berr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, aerr := s.isAdmin(c, userID)
	if aerr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(aerr))
	}

	listing, uerr := s.listingService.UpdateListing(c.Context(), userID, admin, listingID, req.toInput())
	if uerr != nil {
		return models.RespondWithError(c, mapServiceError(uerr), uerr)
	}
	return c.JSON(listing)
}

// DeleteListing handles DELETE /api/listings/:id and DELETE /api/admin/listings/:id
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, aerr := s.isAdmin(c, userID)
	if aerr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(aerr))
	}

	if derr := s.listingService.DeleteListing(c.Context(), userID, admin, listingID); derr != nil {
		return models.RespondWithError(c, mapServiceError(derr), derr)
	}
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}
