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

func TestProjectRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)

	p, created, err := repo.Create(ctx, user.ID, "Alpha", "d")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Alpha", p.DisplayName)
	require.NotNil(t, p.User)
	assert.Equal(t, user.Username, p.User.Username)

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, fetched.ID)
	assert.Equal(t, "d", fetched.Description)
}

func TestProjectRepo_Create_ReturnsExistingOnExactMatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)

	first, created, err := repo.Create(ctx, user.ID, "Alpha", "d")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := repo.Create(ctx, user.ID, "Alpha", "d")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProjectRepo_Create_SameNameDifferentDescriptionConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)

	_, _, err := repo.Create(ctx, user.ID, "Alpha", "d")
	require.NoError(t, err)

	_, _, err = repo.Create(ctx, user.ID, "Alpha", "other")
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestProjectRepo_Create_SameNameForAnotherUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, db)
	bob := testutil.NewTestUser(t, db)

	a, _, err := repo.Create(ctx, alice.ID, "Alpha", "d")
	require.NoError(t, err)
	b, created, err := repo.Create(ctx, bob.ID, "Alpha", "d")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestProjectRepo_Create_UnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)

	_, _, err := repo.Create(context.Background(), 999, "Alpha", "d")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "user")
}

func TestProjectRepo_ListForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	other := testutil.NewTestUser(t, db)

	p1 := testutil.NewTestProject(t, db, user.ID, "One")
	testutil.NewTestProject(t, db, user.ID, "Two")
	testutil.NewTestProject(t, db, other.ID, "Theirs")
	testutil.NewTestTask(t, db, p1.ID, "T1")

	list, err := repo.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].DisplayName)
	require.Len(t, list[0].Tasks, 1)
	assert.Equal(t, "T1", list[0].Tasks[0].Title)
	assert.Empty(t, list[1].Tasks)
}

func TestProjectRepo_ListForUser_UnknownUserIsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)

	list, err := repo.ListForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProjectRepo_Delete_CascadesTasksAndDetachesMeetings(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := repository.NewProjectRepository(db)
	meetings := repository.NewMeetingRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	p := testutil.NewTestProject(t, db, user.ID, "Doomed")
	task := testutil.NewTestTask(t, db, p.ID, "T1")
	m := testutil.NewTestMeeting(t, db, "Standup")

	_, err := meetings.LinkTasks(ctx, m.ID, []uint{task.ID})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, p.ID))

	_, err = projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var taskCount int64
	require.NoError(t, db.Model(&models.ProjectTask{}).Count(&taskCount).Error)
	assert.Zero(t, taskCount)

	survivor, err := meetings.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, survivor.Tasks)
}

func TestProjectRepo_Delete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)

	err := repo.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
