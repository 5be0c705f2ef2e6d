package server

import (
	"zhi/internal/models"
	"zhi/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follows/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	applied, err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("follow", "insert", applied)
	if !applied {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Already following this user"))
	}
	return respondMessage(c, fiber.StatusCreated, "User followed")
}

// UnfollowUser handles DELETE /api/follows/:userId
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	removed, err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("follow", "remove", removed)
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Follow", c.Params("userId")))
	}
	return respondMessage(c, fiber.StatusOK, "User unfollowed")
}

// GetFollowers handles GET /api/follows/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	followers, err := s.followService.ListFollowers(c.Context(), c.Params("userId"))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, followers)
}

// GetFollowing handles GET /api/follows/:userId/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	following, err := s.followService.ListFollowing(c.Context(), c.Params("userId"))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, following)
}

// IsFollowing handles GET /api/follows/:userId/is-following
func (s *Server) IsFollowing(c *fiber.Ctx) error {
	following, err := s.followService.IsFollowing(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, following)
}
