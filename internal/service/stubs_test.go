package service

import (
	"context"

	"zhi/internal/models"
)

// stubPostRepo records calls and returns canned values. Only the methods a
// given test exercises need configuring.
type stubPostRepo struct {
	created     []*models.Post
	createErr   error
	getByIDPost *models.Post
	getByIDErr  error
	exists      bool
	existsErr   error
	deleted     bool
	feed        []*models.Post
	feedLimit   int
	feedOffset  int
	replies     []*models.Post
	replyCount  int64
}

func (s *stubPostRepo) Create(_ context.Context, post *models.Post) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, post)
	return nil
}

func (s *stubPostRepo) GetByID(_ context.Context, id, _ string) (*models.Post, error) {
	if s.getByIDErr != nil {
		return nil, s.getByIDErr
	}
	if s.getByIDPost != nil {
		return s.getByIDPost, nil
	}
	if len(s.created) > 0 {
		return s.created[len(s.created)-1], nil
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *stubPostRepo) Exists(_ context.Context, _ string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubPostRepo) Delete(_ context.Context, _, _ string) (bool, error) {
	return s.deleted, nil
}

func (s *stubPostRepo) GetFeed(_ context.Context, limit, offset int, _ string) ([]*models.Post, error) {
	s.feedLimit, s.feedOffset = limit, offset
	return s.feed, nil
}

func (s *stubPostRepo) GetByAuthor(_ context.Context, _ string, limit, offset int, _ string) ([]*models.Post, error) {
	s.feedLimit, s.feedOffset = limit, offset
	return s.feed, nil
}

func (s *stubPostRepo) GetReplies(_ context.Context, _ string, limit, offset int, _ string) ([]*models.Post, error) {
	s.feedLimit, s.feedOffset = limit, offset
	return s.replies, nil
}

func (s *stubPostRepo) CountReplies(_ context.Context, _ string) (int64, error) {
	return s.replyCount, nil
}

type stubEdgeRepo struct {
	applied    bool
	createErr  error
	removed    bool
	exists     bool
	lastActor  string
	lastTarget string
}

func (s *stubEdgeRepo) Create(_ context.Context, actorID, targetID string) (bool, error) {
	s.lastActor, s.lastTarget = actorID, targetID
	return s.applied, s.createErr
}

func (s *stubEdgeRepo) Remove(_ context.Context, actorID, targetID string) (bool, error) {
	s.lastActor, s.lastTarget = actorID, targetID
	return s.removed, nil
}

func (s *stubEdgeRepo) Exists(_ context.Context, _, _ string) (bool, error) {
	return s.exists, nil
}

func (s *stubEdgeRepo) ListTargetsFor(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *stubEdgeRepo) ListActorsFor(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type stubRetweetRepo struct {
	post      *models.Post
	applied   bool
	err       error
	removed   bool
	lastQuote *string
}

func (s *stubRetweetRepo) Retweet(_ context.Context, _, _ string, quote *string) (*models.Post, bool, error) {
	s.lastQuote = quote
	return s.post, s.applied, s.err
}

func (s *stubRetweetRepo) Unretweet(_ context.Context, _, _ string) (bool, error) {
	return s.removed, nil
}

type stubFollowRepo struct {
	applied   bool
	removed   bool
	following bool
	followers []models.User
	followees []models.User
	lastPair  [2]string
}

func (s *stubFollowRepo) Follow(_ context.Context, followerID, followingID string) (bool, error) {
	s.lastPair = [2]string{followerID, followingID}
	return s.applied, nil
}

func (s *stubFollowRepo) Unfollow(_ context.Context, followerID, followingID string) (bool, error) {
	s.lastPair = [2]string{followerID, followingID}
	return s.removed, nil
}

func (s *stubFollowRepo) IsFollowing(_ context.Context, _, _ string) (bool, error) {
	return s.following, nil
}

func (s *stubFollowRepo) ListFollowers(_ context.Context, _ string) ([]models.User, error) {
	return s.followers, nil
}

func (s *stubFollowRepo) ListFollowing(_ context.Context, _ string) ([]models.User, error) {
	return s.followees, nil
}

type stubUserRepo struct {
	byID       map[string]*models.User
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
	created    []*models.User
	updated    *models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return s.byUsername[username], nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.byEmail[email], nil
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) error {
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserRepo) UpdateProfile(_ context.Context, _ string, _, _ *string) (*models.User, error) {
	return s.updated, nil
}
