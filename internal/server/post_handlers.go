package server

import (
	"zhi/internal/models"
	"zhi/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string  `json:"content"`
		Image   *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), req.Content, req.Image)
	if err != nil {
		return respondAppError(c, err)
	}

	observability.PostsCreatedTotal.WithLabelValues(string(post.Kind())).Inc()
	return respondData(c, fiber.StatusCreated, post)
}

// CreateReply handles POST /api/posts/:postId/reply
func (s *Server) CreateReply(c *fiber.Ctx) error {
	var req struct {
		Content string  `json:"content"`
		Image   *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.postService.CreateReply(c.Context(), currentUserID(c), c.Params("postId"), req.Content, req.Image)
	if err != nil {
		return respondAppError(c, err)
	}

	observability.PostsCreatedTotal.WithLabelValues(string(reply.Kind())).Inc()
	return respondData(c, fiber.StatusCreated, reply)
}

// GetFeed handles GET /api/posts/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageLimit)

	posts, err := s.postService.GetFeed(c.Context(), page.Limit, page.Offset, viewerID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.FeedRequestsTotal.WithLabelValues("home").Inc()
	return respondData(c, fiber.StatusOK, posts)
}

// GetUserPosts handles GET /api/posts/user/:userId
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageLimit)

	posts, err := s.postService.GetUserPosts(c.Context(), c.Params("userId"), page.Limit, page.Offset, viewerID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	observability.FeedRequestsTotal.WithLabelValues("profile").Inc()
	return respondData(c, fiber.StatusOK, posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.Context(), c.Params("id"), viewerID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, post)
}

// GetReplies handles GET /api/posts/:postId/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageLimit)

	replies, err := s.postService.GetReplies(c.Context(), c.Params("postId"), page.Limit, page.Offset, viewerID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, replies)
}

// GetReplyCount handles GET /api/posts/:postId/reply-count
func (s *Server) GetReplyCount(c *fiber.Ctx) error {
	count, err := s.postService.GetReplyCount(c.Context(), c.Params("postId"))
	if err != nil {
		return respondAppError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"count": count})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	deleted, err := s.postService.DeletePost(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params("id")))
	}
	return respondMessage(c, fiber.StatusOK, "Post deleted")
}
