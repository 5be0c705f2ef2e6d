package cache

import (
	"context"
	"time"
)

const revokedTokenPrefix = "revoked_token:"

// RevokeToken marks a token as revoked until its natural expiry.
// No-op when Redis is unavailable.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revokedTokenPrefix+token, "1", ttl).Err()
}

// IsTokenRevoked reports whether the token was revoked via logout.
// When Redis is unavailable revocation checks fail open.
func IsTokenRevoked(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
