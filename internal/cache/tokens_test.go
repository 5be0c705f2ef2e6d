package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestRevokeToken(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, RevokeToken(ctx, "token-abc", time.Hour))
	assert.True(t, IsTokenRevoked(ctx, "token-abc"))
	assert.False(t, IsTokenRevoked(ctx, "token-other"))

	// revocation expires with the token
	mr.FastForward(2 * time.Hour)
	assert.False(t, IsTokenRevoked(ctx, "token-abc"))
}

func TestRevokeToken_ExpiredTokenIsNoop(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, RevokeToken(ctx, "token-abc", -time.Minute))
	assert.False(t, IsTokenRevoked(ctx, "token-abc"))
}

func TestTokenRevocation_WithoutRedis(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, RevokeToken(ctx, "token-abc", time.Hour))
	assert.False(t, IsTokenRevoked(ctx, "token-abc"))
}
