package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"zhi/internal/models"
	"zhi/internal/observability"
	"zhi/internal/repository"
)

// EngagementService carries likes and re-shares. Duplicate engagement is
// ordinary data here: the repositories absorb unique-index conflicts and the
// service passes the applied/not-applied result through unchanged.
type EngagementService struct {
	likes    repository.EdgeRepository
	retweets repository.RetweetRepository
	postRepo repository.PostRepository
	log      *observability.StructuredLogger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(
	likes repository.EdgeRepository,
	retweets repository.RetweetRepository,
	postRepo repository.PostRepository,
) *EngagementService {
	return &EngagementService{
		likes:    likes,
		retweets: retweets,
		postRepo: postRepo,
		log:      observability.NewStructuredLogger(),
	}
}

// Like records userID liking postID. False means already liked.
func (s *EngagementService) Like(ctx context.Context, userID, postID string) (bool, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, models.NewNotFoundError("Post", postID)
	}
	return s.likes.Create(ctx, userID, postID)
}

// Unlike removes the like. False means there was nothing to remove.
func (s *EngagementService) Unlike(ctx context.Context, userID, postID string) (bool, error) {
	return s.likes.Remove(ctx, userID, postID)
}

// Retweet re-shares postID as actorID, optionally with quote text. The
// returned post is the derived row carrying a snapshot of the original;
// applied is false when the actor already retweeted the post.
func (s *EngagementService) Retweet(ctx context.Context, actorID, postID string, quote *string) (*models.Post, bool, error) {
	if quote != nil {
		trimmed := strings.TrimSpace(*quote)
		if trimmed == "" {
			quote = nil
		} else if utf8.RuneCountInString(*quote) > maxContentLen {
			return nil, false, models.NewValidationError("Content exceeds 280 characters")
		}
	}
	s.log.LogServiceCall(ctx, "engagement", "retweet", map[string]interface{}{
		"actor_id": actorID,
		"post_id":  postID,
		"quoted":   quote != nil,
	})
	return s.retweets.Retweet(ctx, actorID, postID, quote)
}

// Unretweet removes the re-share and its derived post. False means the actor
// had not retweeted the post.
func (s *EngagementService) Unretweet(ctx context.Context, actorID, postID string) (bool, error) {
	return s.retweets.Unretweet(ctx, actorID, postID)
}
