package server

import (
	"zhi/internal/models"
	"zhi/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/likes/:postId
func (s *Server) LikePost(c *fiber.Ctx) error {
	applied, err := s.engagementService.Like(c.Context(), currentUserID(c), c.Params("postId"))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("like", "insert", applied)
	if !applied {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Already liked this post"))
	}
	return respondMessage(c, fiber.StatusCreated, "Post liked")
}

// UnlikePost handles DELETE /api/likes/:postId
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	removed, err := s.engagementService.Unlike(c.Context(), currentUserID(c), c.Params("postId"))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("like", "remove", removed)
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Like", c.Params("postId")))
	}
	return respondMessage(c, fiber.StatusOK, "Post unliked")
}

// RetweetPost handles POST /api/retweets/:postId
func (s *Server) RetweetPost(c *fiber.Ctx) error {
	var req struct {
		Quote *string `json:"quote"`
	}
	// Body is optional; a bare retweet carries no payload. A body that is
	// present but unparseable is rejected so a quote is never silently dropped.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	post, applied, err := s.engagementService.Retweet(c.Context(), currentUserID(c), c.Params("postId"), req.Quote)
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("retweet", "insert", applied)
	if !applied {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Already retweeted this post"))
	}
	return respondData(c, fiber.StatusCreated, post)
}

// UnretweetPost handles DELETE /api/retweets/:postId
func (s *Server) UnretweetPost(c *fiber.Ctx) error {
	removed, err := s.engagementService.Unretweet(c.Context(), currentUserID(c), c.Params("postId"))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.RecordEdgeWrite("retweet", "remove", removed)
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Retweet", c.Params("postId")))
	}
	return respondMessage(c, fiber.StatusOK, "Retweet removed")
}
