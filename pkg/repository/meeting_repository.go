package repository

import (
	"context"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const meetingTasksTable = "meeting_tasks"

// GormMeetingRepository implements MeetingRepository with gorm.
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new GormMeetingRepository.
func NewMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create inserts the meeting row and then, when taskIDs is non-empty, links
// the matching tasks. The row must exist before the join table can reference it.
func (r *GormMeetingRepository) Create(ctx context.Context, m *models.Meeting, taskIDs []uint) (*models.Meeting, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m.Tasks = nil
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return translate("meeting", err)
		}
		if len(taskIDs) == 0 {
			return nil
		}
		return replaceTasks(tx, m, taskIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *GormMeetingRepository) LinkTasks(ctx context.Context, meetingID uint, taskIDs []uint) (*models.Meeting, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Meeting
		if err := tx.First(&m, meetingID).Error; err != nil {
			return translate("meeting", err)
		}
		return replaceTasks(tx, &m, taskIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, meetingID)
}

// GetByID loads the meeting with its tasks and their projects.
func (r *GormMeetingRepository) GetByID(ctx context.Context, id uint) (*models.Meeting, error) {
	var m models.Meeting
	if err := withTasks(r.db.WithContext(ctx)).First(&m, id).Error; err != nil {
		return nil, translate("meeting", err)
	}
	return &m, nil
}

// List returns every meeting ordered by start time.
func (r *GormMeetingRepository) List(ctx context.Context) ([]*models.Meeting, error) {
	meetings := []*models.Meeting{}
	err := withTasks(r.db.WithContext(ctx)).
		Order("start_time ASC").
		Order("id ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, translate("meetings", err)
	}
	return meetings, nil
}

// ListForTask returns the meetings the task is linked to, ordered by start time.
func (r *GormMeetingRepository) ListForTask(ctx context.Context, taskID uint) ([]*models.Meeting, error) {
	if err := r.db.WithContext(ctx).Select("id").First(&models.ProjectTask{}, taskID).Error; err != nil {
		return nil, translate("task", err)
	}

	meetings := []*models.Meeting{}
	err := withTasks(r.db.WithContext(ctx)).
		Joins("JOIN "+meetingTasksTable+" ON "+meetingTasksTable+".meeting_id = meetings.id").
		Where(meetingTasksTable+".project_task_id = ?", taskID).
		Order("meetings.start_time ASC").
		Order("meetings.id ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, translate("meetings", err)
	}
	return meetings, nil
}

// replaceTasks clears the meeting's links and attaches the tasks matching ids.
// A cleared Association cannot be reused, so the append builds a new one.
func replaceTasks(tx *gorm.DB, m *models.Meeting, ids []uint) error {
	if err := tx.Model(m).Association("Tasks").Clear(); err != nil {
		return translate("meeting tasks", err)
	}
	if len(ids) == 0 {
		return nil
	}

	var tasks []*models.ProjectTask
	if err := tx.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return translate("tasks", err)
	}
	if len(tasks) == 0 {
		return nil
	}
	return translate("meeting tasks", tx.Model(m).Association("Tasks").Append(tasks))
}

func withTasks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("project_tasks.id") }).
		Preload("Tasks.Project")
}
