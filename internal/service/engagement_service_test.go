package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhi/internal/models"
)

func TestEngagementService_Like(t *testing.T) {
	likes := &stubEdgeRepo{applied: true}
	posts := &stubPostRepo{exists: true}
	svc := NewEngagementService(likes, &stubRetweetRepo{}, posts)

	applied, err := svc.Like(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "user-1", likes.lastActor)
	assert.Equal(t, "post-1", likes.lastTarget)
}

func TestEngagementService_Like_Duplicate(t *testing.T) {
	likes := &stubEdgeRepo{applied: false}
	svc := NewEngagementService(likes, &stubRetweetRepo{}, &stubPostRepo{exists: true})

	applied, err := svc.Like(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestEngagementService_Like_MissingPost(t *testing.T) {
	likes := &stubEdgeRepo{applied: true}
	svc := NewEngagementService(likes, &stubRetweetRepo{}, &stubPostRepo{exists: false})

	_, err := svc.Like(context.Background(), "user-1", "ghost")
	assert.True(t, models.IsNotFound(err))
	// the edge write was never attempted
	assert.Empty(t, likes.lastActor)
}

func TestEngagementService_Unlike(t *testing.T) {
	likes := &stubEdgeRepo{removed: false}
	svc := NewEngagementService(likes, &stubRetweetRepo{}, &stubPostRepo{})

	removed, err := svc.Unlike(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestEngagementService_Retweet_QuoteNormalization(t *testing.T) {
	retweets := &stubRetweetRepo{post: &models.Post{}, applied: true}
	svc := NewEngagementService(&stubEdgeRepo{}, retweets, &stubPostRepo{})
	ctx := context.Background()

	// blank quote collapses to a plain retweet
	blank := "   "
	_, applied, err := svc.Retweet(ctx, "user-1", "post-1", &blank)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Nil(t, retweets.lastQuote)

	quote := "worth a read"
	_, _, err = svc.Retweet(ctx, "user-1", "post-1", &quote)
	require.NoError(t, err)
	require.NotNil(t, retweets.lastQuote)
	assert.Equal(t, quote, *retweets.lastQuote)
}

func TestEngagementService_Retweet_QuoteTooLong(t *testing.T) {
	retweets := &stubRetweetRepo{}
	svc := NewEngagementService(&stubEdgeRepo{}, retweets, &stubPostRepo{})

	long := strings.Repeat("q", 281)
	_, _, err := svc.Retweet(context.Background(), "user-1", "post-1", &long)
	assertErrorCode(t, err, "VALIDATION_ERROR")

	// character-counted, so a 280-character multibyte quote passes
	wide := strings.Repeat("猫", 280)
	retweets.post, retweets.applied = &models.Post{}, true
	_, applied, err := svc.Retweet(context.Background(), "user-1", "post-1", &wide)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestEngagementService_Unretweet(t *testing.T) {
	retweets := &stubRetweetRepo{removed: true}
	svc := NewEngagementService(&stubEdgeRepo{}, retweets, &stubPostRepo{})

	removed, err := svc.Unretweet(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	assert.True(t, removed)
}
