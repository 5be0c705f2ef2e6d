package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ExtractCorrelationID(ctx))

	ctx = WithCorrelationID(ctx, "req-123")
	assert.Equal(t, "req-123", ExtractCorrelationID(ctx))
}

func TestRepoLogger(t *testing.T) {
	log := NewRepoLogger("retweets")
	ctx := WithCorrelationID(context.Background(), "req-123")

	// logging must tolerate nil field maps and missing correlation ids
	log.LogWrite(ctx, "retweet", nil)
	log.LogWrite(context.Background(), "retweet", map[string]interface{}{"actor_id": "u1"})
	log.LogError(ctx, assert.AnError, "retweet")
}
