package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/kutbudev/alarmclock/internal/testutil"
	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "ada", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byName, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)

	_, err = repo.GetByUsername(ctx, "grace")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepo_DuplicateUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "ada", PasswordHash: "h"}))
	err := repo.Create(ctx, &models.User{Username: "ada", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestSessionRepo(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	now := time.Now().UTC()

	live := &models.Session{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	stale := &models.Session{Token: "stale", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByToken(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, user.Username, got.User.Username)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetByToken(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "live"))
	_, err = repo.GetByToken(ctx, "live")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepo_UnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)

	err := repo.Create(context.Background(), &models.Session{Token: "t", UserID: 99, ExpiresAt: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
