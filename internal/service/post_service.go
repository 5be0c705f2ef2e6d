// Package service implements the business rules over the repositories.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"zhi/internal/models"
	"zhi/internal/repository"
)

const maxContentLen = 280

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PostService carries post creation, deletion and every timeline read.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// clampPage normalizes pagination parameters to the engine's bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// validateContent enforces the 1-280 character contract for authored text.
// The limit counts characters, not bytes, so multibyte text is not penalized.
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "", models.NewValidationError("Content exceeds 280 characters")
	}
	return content, nil
}

// CreatePost creates an original post by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string, image *string) (*models.Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	post := models.NewOriginalPost(authorID, content, image)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, authorID)
}

// CreateReply creates a reply to parentID. NotFound when the parent is absent.
func (s *PostService) CreateReply(ctx context.Context, authorID, parentID, content string, image *string) (*models.Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	post := models.NewReplyPost(authorID, parentID, content, image)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, authorID)
}

// GetPost returns one post with aggregates and the viewer's flags.
func (s *PostService) GetPost(ctx context.Context, id, viewerID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// DeletePost removes the post iff requesterID authored it. The false result
// covers both "no such post" and "not the author"; neither is an error.
func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) (bool, error) {
	return s.postRepo.Delete(ctx, id, requesterID)
}

// GetFeed returns the main timeline: top-level posts, newest first.
func (s *PostService) GetFeed(ctx context.Context, limit, offset int, viewerID string) ([]*models.Post, error) {
	limit, offset = clampPage(limit, offset)
	return s.postRepo.GetFeed(ctx, limit, offset, viewerID)
}

// GetUserPosts returns one author's top-level posts and retweets, newest first.
func (s *PostService) GetUserPosts(ctx context.Context, authorID string, limit, offset int, viewerID string) ([]*models.Post, error) {
	limit, offset = clampPage(limit, offset)
	return s.postRepo.GetByAuthor(ctx, authorID, limit, offset, viewerID)
}

// GetReplies returns a post's replies, oldest first.
func (s *PostService) GetReplies(ctx context.Context, parentID string, limit, offset int, viewerID string) ([]*models.Post, error) {
	limit, offset = clampPage(limit, offset)
	return s.postRepo.GetReplies(ctx, parentID, limit, offset, viewerID)
}

// GetReplyCount returns the total reply count independent of a reply fetch.
func (s *PostService) GetReplyCount(ctx context.Context, postID string) (int64, error) {
	return s.postRepo.CountReplies(ctx, postID)
}
