package server

import (
	"github.com/helferherz/karmalama/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetLevels handles GET /api/levels
// @Summary Level thresholds
// @Tags progress
// @Produce json
// @Success 200 {array} models.Level
// @Router /levels [get]
func (s *Server) GetLevels(c *fiber.Ctx) error {
	levels, err := s.progressSvc.Levels(c.Context())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if len(levels) == 0 {
		levels = models.DefaultLevels()
	}
	return c.JSON(levels)
}

// GetMyProgress handles GET /api/users/me/progress
func (s *Server) GetMyProgress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"points":       user.Points,
		"level":        user.Level,
		"hours_worked": user.HoursWorked,
	})
}

// AwardPoints handles POST /api/admin/users/:id/points — manual award by an
// administrator.
// @Summary Award points to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{points=int,level=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/points [post]
func (s *Server) AwardPoints(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Points int `json:"points"`
		Hours  int `json:"hours"`
	}
	if berr := c.BodyParser(&req); berr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, aerr := s.progressSvc.AwardPoints(c.Context(), targetID, req.Points, req.Hours)
	if aerr != nil {
		return models.RespondWithError(c, mapServiceError(aerr), aerr)
	}

	if result.LeveledUp {
		s.publishUserEvent(targetID, EventLevelUp, map[string]interface{}{
			"old_level": result.OldLevel,
			"new_level": result.NewLevel,
			"points":    result.User.Points,
		})
	}

	return c.JSON(fiber.Map{
		"points":       result.User.Points,
		"level":        result.User.Level,
		"hours_worked": result.User.HoursWorked,
		"leveled_up":   result.LeveledUp,
	})
}
