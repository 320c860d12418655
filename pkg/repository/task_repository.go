package repository

import (
	"context"
	"errors"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements TaskRepository with gorm.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new GormTaskRepository.
func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Upsert writes the task identified by (projectID, title). fields.Title and
// fields.ProjectID are ignored; the lookup key is never rewritten.
func (r *GormTaskRepository) Upsert(ctx context.Context, projectID uint, title string, fields TaskFields) (*models.ProjectTask, bool, error) {
	var (
		task    *models.ProjectTask
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Project{}, projectID).Error; err != nil {
			return translate("project", err)
		}

		var existing models.ProjectTask
		err := tx.Where("project_id = ? AND title = ?", projectID, title).First(&existing).Error
		switch {
		case err == nil:
			task = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			task = models.NewProjectTask(projectID, title)
			created = true
		default:
			return translate("task", err)
		}

		fields.ProjectID, fields.Title = nil, nil
		applyTaskFields(task, fields)

		if created {
			return translate("task", tx.Omit(clause.Associations).Create(task).Error)
		}
		return translate("task", tx.Omit(clause.Associations).Save(task).Error)
	})
	if err != nil {
		return nil, false, err
	}

	t, err := r.GetByID(ctx, task.ID)
	if err != nil {
		return nil, false, err
	}
	return t, created, nil
}

// Update overwrites the supplied fields. A supplied ProjectID moves the task
// to that project, which must exist.
func (r *GormTaskRepository) Update(ctx context.Context, id uint, fields TaskFields) (*models.ProjectTask, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.ProjectTask
		if err := tx.First(&task, id).Error; err != nil {
			return translate("task", err)
		}
		if fields.ProjectID != nil && *fields.ProjectID != task.ProjectID {
			if err := tx.Select("id").First(&models.Project{}, *fields.ProjectID).Error; err != nil {
				return translate("project", err)
			}
		}

		applyTaskFields(&task, fields)
		return translate("task", tx.Omit(clause.Associations).Save(&task).Error)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID loads the task with its project.
func (r *GormTaskRepository) GetByID(ctx context.Context, id uint) (*models.ProjectTask, error) {
	var t models.ProjectTask
	if err := r.db.WithContext(ctx).Preload("Project").First(&t, id).Error; err != nil {
		return nil, translate("task", err)
	}
	return &t, nil
}

// ListForProject returns the project's tasks; an unknown project is ErrNotFound.
func (r *GormTaskRepository) ListForProject(ctx context.Context, projectID uint) ([]*models.ProjectTask, error) {
	db := r.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Project{}, projectID).Error; err != nil {
		return nil, translate("project", err)
	}

	tasks := []*models.ProjectTask{}
	err := db.
		Preload("Project").
		Where("project_id = ?", projectID).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("tasks", err)
	}
	return tasks, nil
}

// ListForUser returns the tasks of every project the user owns.
func (r *GormTaskRepository) ListForUser(ctx context.Context, userID uint) ([]*models.ProjectTask, error) {
	tasks := []*models.ProjectTask{}
	err := r.db.WithContext(ctx).
		Preload("Project").
		Joins("JOIN projects ON projects.id = project_tasks.project_id").
		Where("projects.user_id = ?", userID).
		Order("project_tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("tasks", err)
	}
	return tasks, nil
}

// Delete removes the task after detaching it from its meetings.
func (r *GormTaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.ProjectTask
		if err := tx.Select("id").First(&task, id).Error; err != nil {
			return translate("task", err)
		}
		if err := tx.Model(&task).Association("Meetings").Clear(); err != nil {
			return translate("meeting tasks", err)
		}
		return translate("task", tx.Delete(&task).Error)
	})
}

func applyTaskFields(t *models.ProjectTask, f TaskFields) {
	if f.ProjectID != nil {
		t.ProjectID = *f.ProjectID
	}
	if f.Title != nil {
		t.Title = *f.Title
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Status != nil {
		t.Status = *f.Status
	}
	if f.IsDailyTask != nil {
		t.IsDailyTask = *f.IsDailyTask
	}
	if f.Deadline != nil {
		d := datatypes.Date(*f.Deadline)
		t.Deadline = &d
	}
}
