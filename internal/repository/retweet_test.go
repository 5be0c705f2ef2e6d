package repository

import (
	"context"
	"testing"

	"zhi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetweetRepository_CreatesEdgeAndDerivedPost(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "share me", nil)
	require.NoError(t, posts.Create(ctx, original))

	derived, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	require.True(t, applied)
	require.NotNil(t, derived)

	assert.Equal(t, models.PostKindRetweet, derived.Kind())
	assert.Equal(t, sharer.ID, derived.UserID)
	assert.Nil(t, derived.Content)
	assert.Equal(t, sharer.Username, derived.User.Username)
	require.NotNil(t, derived.RetweetOfPost)
	assert.Equal(t, original.ID, derived.RetweetOfPost.ID)
	assert.EqualValues(t, 1, derived.RetweetOfPost.RetweetCount)

	var edgeCount, postCount int64
	require.NoError(t, db.Model(&models.Retweet{}).Count(&edgeCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("retweet_of IS NOT NULL").Count(&postCount).Error)
	assert.EqualValues(t, 1, edgeCount)
	assert.EqualValues(t, 1, postCount)
}

func TestRetweetRepository_QuoteRetweet(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "quotable", nil)
	require.NoError(t, posts.Create(ctx, original))

	quote := "adding my take"
	derived, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, &quote)
	require.NoError(t, err)
	require.True(t, applied)
	require.NotNil(t, derived.Content)
	assert.Equal(t, quote, *derived.Content)
}

func TestRetweetRepository_DuplicateLeavesNoSecondPost(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "once only", nil)
	require.NoError(t, posts.Create(ctx, original))

	_, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	require.True(t, applied)

	derived, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Nil(t, derived)

	var edgeCount, postCount int64
	require.NoError(t, db.Model(&models.Retweet{}).Count(&edgeCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("retweet_of IS NOT NULL").Count(&postCount).Error)
	assert.EqualValues(t, 1, edgeCount)
	assert.EqualValues(t, 1, postCount)
}

func TestRetweetRepository_MissingOriginal(t *testing.T) {
	db := setupTestDB(t)
	retweets := NewRetweetRepository(db)
	sharer := createTestUser(t, db, "bob")

	_, _, err := retweets.Retweet(context.Background(), sharer.ID, "no-such-post", nil)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	// nothing half-committed
	var edgeCount int64
	require.NoError(t, db.Model(&models.Retweet{}).Count(&edgeCount).Error)
	assert.Zero(t, edgeCount)
}

func TestRetweetRepository_UnretweetRemovesBoth(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "fleeting", nil)
	require.NoError(t, posts.Create(ctx, original))

	_, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	require.True(t, applied)

	removed, err := retweets.Unretweet(ctx, sharer.ID, original.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	var edgeCount, postCount int64
	require.NoError(t, db.Model(&models.Retweet{}).Count(&edgeCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("retweet_of IS NOT NULL").Count(&postCount).Error)
	assert.Zero(t, edgeCount)
	assert.Zero(t, postCount)

	// retweeting again is allowed after removal
	_, applied, err = retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestRetweetRepository_DeletingDerivedPostRemovesEdge(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "share me", nil)
	require.NoError(t, posts.Create(ctx, original))

	derived, applied, err := retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	require.True(t, applied)

	// Deleting the derived row through the ordinary owner-delete path takes
	// the edge with it; an edge must never exist without its derived post.
	deleted, err := posts.Delete(ctx, derived.ID, sharer.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	var edgeCount int64
	require.NoError(t, db.Model(&models.Retweet{}).Count(&edgeCount).Error)
	assert.Zero(t, edgeCount)

	refetched, err := posts.GetByID(ctx, original.ID, sharer.ID)
	require.NoError(t, err)
	assert.Zero(t, refetched.RetweetCount)
	assert.False(t, refetched.Retweeted)

	// and re-retweeting is possible again
	_, applied, err = retweets.Retweet(ctx, sharer.ID, original.ID, nil)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestRetweetRepository_UnretweetWithoutEdge(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	retweets := NewRetweetRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")
	sharer := createTestUser(t, db, "bob")

	original := models.NewOriginalPost(author.ID, "untouched", nil)
	require.NoError(t, posts.Create(ctx, original))

	removed, err := retweets.Unretweet(ctx, sharer.ID, original.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
