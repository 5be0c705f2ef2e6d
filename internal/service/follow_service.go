package service

import (
	"context"

	"zhi/internal/models"
	"zhi/internal/repository"
)

// FollowService carries the social graph operations. Self-follow is rejected
// here, at the collaborator boundary, so the edge store stays generic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow makes followerID follow followingID. False means already following.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return false, err
	}
	return s.followRepo.Follow(ctx, followerID, followingID)
}

// Unfollow removes the follow edge. False means there was nothing to remove.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.Unfollow(ctx, followerID, followingID)
}

// IsFollowing reports the follow state between two users.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}

// ListFollowers returns users following userID, newest follow first.
func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

// ListFollowing returns users userID follows, newest follow first.
func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}
