package repository

import (
	"context"
	"time"

	"github.com/kutbudev/alarmclock/pkg/models"
)

// TaskFields carries the task attributes a caller supplied. Nil fields are
// left untouched on update and take their defaults on create.
type TaskFields struct {
	ProjectID   *uint
	Title       *string
	Description *string
	Priority    *models.Priority
	Status      *models.TaskStatus
	IsDailyTask *bool
	Deadline    *time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ProjectRepository interface {
	// Create returns the existing project when user, display name and
	// description all match; created reports whether a row was inserted.
	Create(ctx context.Context, userID uint, displayName, description string) (p *models.Project, created bool, err error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type TaskRepository interface {
	// Upsert looks the task up by (projectID, title) and overwrites the
	// supplied fields, or creates it. created reports whether a row was inserted.
	Upsert(ctx context.Context, projectID uint, title string, fields TaskFields) (t *models.ProjectTask, created bool, err error)
	Update(ctx context.Context, id uint, fields TaskFields) (*models.ProjectTask, error)
	GetByID(ctx context.Context, id uint) (*models.ProjectTask, error)
	ListForProject(ctx context.Context, projectID uint) ([]*models.ProjectTask, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.ProjectTask, error)
	Delete(ctx context.Context, id uint) error
}

type MeetingRepository interface {
	Create(ctx context.Context, m *models.Meeting, taskIDs []uint) (*models.Meeting, error)
	// LinkTasks replaces the meeting's task set with the tasks matching
	// taskIDs. Unknown ids are dropped.
	LinkTasks(ctx context.Context, meetingID uint, taskIDs []uint) (*models.Meeting, error)
	GetByID(ctx context.Context, id uint) (*models.Meeting, error)
	List(ctx context.Context) ([]*models.Meeting, error)
	ListForTask(ctx context.Context, taskID uint) ([]*models.Meeting, error)
}

type NoteRepository interface {
	// GetOrCreate returns the meeting's note, inserting an empty one first if absent.
	GetOrCreate(ctx context.Context, meetingID uint) (*models.Note, error)
	Update(ctx context.Context, meetingID uint, content string) (*models.Note, error)
}
