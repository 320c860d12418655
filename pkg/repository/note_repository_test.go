package repository_test

import (
	"context"
	"testing"

	"github.com/kutbudev/alarmclock/internal/testutil"
	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepo_GetOrCreate_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()
	m := testutil.NewTestMeeting(t, db, "Retro")

	first, err := repo.GetOrCreate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, first.MeetingID)
	assert.Empty(t, first.Content)

	second, err := repo.GetOrCreate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Content, second.Content)

	var count int64
	require.NoError(t, db.Model(&models.Note{}).Where("meeting_id = ?", m.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNoteRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()
	m := testutil.NewTestMeeting(t, db, "Retro")

	updated, err := repo.Update(ctx, m.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)

	fetched, err := repo.GetOrCreate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, fetched.ID)
	assert.Equal(t, "hello", fetched.Content)
}

func TestNoteRepo_UnknownMeeting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, 8)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, 8, "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoteRepo_DeletedWithMeeting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	m := testutil.NewTestMeeting(t, db, "Retro")

	_, err := repo.Update(context.Background(), m.ID, "bye")
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Meeting{}, m.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Note{}).Count(&count).Error)
	assert.Zero(t, count)
}
