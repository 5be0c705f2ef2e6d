package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// Pins the conflict-absorbing insert so the idempotency contract cannot
// silently regress into a read-then-write check.
func TestEdgeRepository_InsertUsesOnConflictDoNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	likes := NewEdgeRepository(db, LikeEdges)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "actor-1", "post-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := likes.Create(ctx, "actor-1", "post-1")
	require.NoError(t, err)
	assert.True(t, applied)

	// zero rows affected means the edge already existed
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "actor-1", "post-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err = likes.Create(ctx, "actor-1", "post-1")
	require.NoError(t, err)
	assert.False(t, applied)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEdgeRepository_RemoveSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	follows := NewEdgeRepository(db, FollowEdges)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM follows WHERE follower_id = $1 AND following_id = $2")).
		WithArgs("follower-1", "following-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := follows.Remove(ctx, "follower-1", "following-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
