package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/gorm"
)

var counter atomic.Int64

func next() int64 {
	return counter.Add(1)
}

// NewTestUser inserts a user with a unique username.
func NewTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{
		Username:     fmt.Sprintf("user%03d", next()),
		PasswordHash: "unused",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

// NewTestProject inserts a project owned by userID.
func NewTestProject(t *testing.T, db *gorm.DB, userID uint, name string) *models.Project {
	t.Helper()
	p := &models.Project{UserID: userID, DisplayName: name, Description: name + " description"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

// NewTestTask inserts a task with default priority and status.
func NewTestTask(t *testing.T, db *gorm.DB, projectID uint, title string) *models.ProjectTask {
	t.Helper()
	task := models.NewProjectTask(projectID, title)
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

// MeetingOption customises NewTestMeeting.
type MeetingOption func(*models.Meeting)

func WithStart(start time.Time) MeetingOption {
	return func(m *models.Meeting) {
		m.StartTime = start
		m.EndTime = start.Add(time.Hour)
	}
}

// NewTestMeeting inserts a one-hour meeting starting tomorrow unless overridden.
func NewTestMeeting(t *testing.T, db *gorm.DB, title string, opts ...MeetingOption) *models.Meeting {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	m := &models.Meeting{
		Title:       title,
		Description: title + " agenda",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create meeting: %v", err)
	}
	return m
}
