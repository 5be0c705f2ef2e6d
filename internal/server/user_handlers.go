package server

import (
	"zhi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req.Bio, req.Avatar)
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}
