// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"zhi/internal/models"

	"gorm.io/gorm"
)

// FollowRepository reads and writes the follow graph. Writes go through the
// generic edge helpers; reads join users so listings carry public profile
// fields directly.
type FollowRepository interface {
	// Follow creates the edge and returns false when it already existed.
	Follow(ctx context.Context, followerID, followingID string) (bool, error)
	// Unfollow removes the edge and reports whether one existed.
	Unfollow(ctx context.Context, followerID, followingID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// ListFollowers returns the users following userID, newest follow first.
	ListFollowers(ctx context.Context, userID string) ([]models.User, error)
	// ListFollowing returns the users userID follows, newest follow first.
	ListFollowing(ctx context.Context, userID string) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followingID string) (bool, error) {
	return insertEdge(r.db.WithContext(ctx), FollowEdges, followerID, followingID)
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	return removeEdge(r.db.WithContext(ctx), FollowEdges, followerID, followingID)
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return edgeExists(r.db.WithContext(ctx), FollowEdges, followerID, followingID)
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.following_id = ?", userID).
		Order("f.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN follows f ON users.id = f.following_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
