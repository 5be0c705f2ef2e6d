package repository

import (
	"context"
	"testing"

	"zhi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByID(ctx, "no-such-id")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	bio := "gopher"
	updated, err := repo.UpdateProfile(ctx, user.ID, &bio, nil)
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)

	avatar := "https://example.com/a.png"
	updated, err = repo.UpdateProfile(ctx, user.ID, nil, &avatar)
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)
	assert.Equal(t, avatar, updated.Avatar)

	// both nil updates nothing but still returns the row
	updated, err = repo.UpdateProfile(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)

	_, err = repo.UpdateProfile(ctx, "no-such-id", &bio, nil)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}
