package server

import (
	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name           *string  `json:"name"`
		Surname        *string  `json:"surname"`
		Phone          *string  `json:"phone"`
		Postal         *string  `json:"postal"`
		Area           *string  `json:"area"`
		AboutMe        *string  `json:"about_me"`
		Interests      []string `json:"interests"`
		Skillset       []string `json:"skillset"`
		LanguageSkills []string `json:"language_skills"`
		EducationLevel *string  `json:"education_level"`
		WorkLevel      *string  `json:"work_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	update := service.ProfileUpdate{
		Name:           req.Name,
		Surname:        req.Surname,
		Phone:          req.Phone,
		Postal:         req.Postal,
		Area:           req.Area,
		AboutMe:        req.AboutMe,
		Interests:      req.Interests,
		Skillset:       req.Skillset,
		LanguageSkills: req.LanguageSkills,
	}
	if req.EducationLevel != nil {
		lvl := models.EducationLevel(*req.EducationLevel)
		update.EducationLevel = &lvl
	}
	if req.WorkLevel != nil {
		lvl := models.WorkLevel(*req.WorkLevel)
		update.WorkLevel = &lvl
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, update)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// ChangeMyPassword handles PUT /api/users/me/password
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete own account
// @Tags users
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetUserProfile handles GET /api/users/:id. Returns a public summary, not
// the full account record.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, gerr := s.userService.GetProfile(c.Context(), targetID)
	if gerr != nil {
		return models.RespondWithError(c, mapServiceError(gerr), gerr)
	}
	return c.JSON(userSummary(*user))
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(users)
}
