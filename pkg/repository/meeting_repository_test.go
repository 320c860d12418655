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

func taskIDs(m *models.Meeting) []uint {
	ids := make([]uint, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestMeetingRepo_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	p := testutil.NewTestProject(t, db, user.ID, "Alpha")
	t1 := testutil.NewTestTask(t, db, p.ID, "T1")
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		taskIDs []uint
		want    []uint
	}{
		{"without tasks", nil, []uint{}},
		{"with tasks", []uint{t1.ID}, []uint{t1.ID}},
		{"unknown ids dropped", []uint{t1.ID, 9999}, []uint{t1.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := repo.Create(ctx, &models.Meeting{
				Title:     "M1",
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			}, tt.taskIDs)
			require.NoError(t, err)
			assert.NotZero(t, m.ID)
			assert.Equal(t, tt.want, taskIDs(m))
			assert.True(t, start.Equal(m.StartTime))
		})
	}
}

func TestMeetingRepo_LinkTasks_ReplacesSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	p := testutil.NewTestProject(t, db, user.ID, "Alpha")
	a := testutil.NewTestTask(t, db, p.ID, "A")
	b := testutil.NewTestTask(t, db, p.ID, "B")
	c := testutil.NewTestTask(t, db, p.ID, "C")
	m := testutil.NewTestMeeting(t, db, "Planning")

	got, err := repo.LinkTasks(ctx, m.ID, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, taskIDs(got))

	got, err = repo.LinkTasks(ctx, m.ID, []uint{c.ID, b.ID, 777})
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, c.ID}, taskIDs(got))
	require.NotNil(t, got.Tasks[0].Project)
	assert.Equal(t, "Alpha", got.Tasks[0].Project.DisplayName)

	got, err = repo.LinkTasks(ctx, m.ID, []uint{})
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)

	var tasks int64
	require.NoError(t, db.Model(&models.ProjectTask{}).Count(&tasks).Error)
	assert.EqualValues(t, 3, tasks, "unlinking must not delete tasks")
}

func TestMeetingRepo_LinkTasks_RelinkSameTask(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	p := testutil.NewTestProject(t, db, user.ID, "Alpha")
	t1 := testutil.NewTestTask(t, db, p.ID, "T1")
	m := testutil.NewTestMeeting(t, db, "Standup")

	for i := 0; i < 3; i++ {
		got, err := repo.LinkTasks(ctx, m.ID, []uint{t1.ID})
		require.NoError(t, err)
		assert.Equal(t, []uint{t1.ID}, taskIDs(got))
	}

	var links int64
	require.NoError(t, db.Table("meeting_tasks").Where("meeting_id = ?", m.ID).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestMeetingRepo_LinkTasks_UnknownMeeting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)

	_, err := repo.LinkTasks(context.Background(), 31, []uint{1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeetingRepo_TaskSharedAcrossMeetings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	user := testutil.NewTestUser(t, db)
	p := testutil.NewTestProject(t, db, user.ID, "Alpha")
	task := testutil.NewTestTask(t, db, p.ID, "Shared")
	base := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	late := testutil.NewTestMeeting(t, db, "Late", testutil.WithStart(base.Add(4*time.Hour)))
	early := testutil.NewTestMeeting(t, db, "Early", testutil.WithStart(base))
	testutil.NewTestMeeting(t, db, "Unrelated", testutil.WithStart(base.Add(time.Hour)))

	_, err := repo.LinkTasks(ctx, late.ID, []uint{task.ID})
	require.NoError(t, err)
	_, err = repo.LinkTasks(ctx, early.ID, []uint{task.ID})
	require.NoError(t, err)

	meetings, err := repo.ListForTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Early", meetings[0].Title)
	assert.Equal(t, "Late", meetings[1].Title)

	_, err = repo.ListForTask(ctx, 5555)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeetingRepo_List_OrderedByStartTime(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	testutil.NewTestMeeting(t, db, "Second", testutil.WithStart(base.Add(2*time.Hour)))
	testutil.NewTestMeeting(t, db, "Third", testutil.WithStart(base.Add(3*time.Hour)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)

	testutil.NewTestMeeting(t, db, "First", testutil.WithStart(base))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"First", "Second", "Third"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestMeetingRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewMeetingRepository(db)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "meeting")
}
