package repository

import (
	"context"
	"errors"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository with gorm.
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new GormProjectRepository.
func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create returns the owner's project named displayName when its description
// also matches. A project with the same name but another description is a
// conflict.
func (r *GormProjectRepository) Create(ctx context.Context, userID uint, displayName, description string) (*models.Project, bool, error) {
	var (
		project models.Project
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, userID).Error; err != nil {
			return translate("user", err)
		}

		err := tx.Where("user_id = ? AND display_name = ?", userID, displayName).First(&project).Error
		switch {
		case err == nil:
			if project.Description != description {
				return translate("project", gorm.ErrDuplicatedKey)
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return translate("project", err)
		}

		project = models.Project{UserID: userID, DisplayName: displayName, Description: description}
		if err := tx.Create(&project).Error; err != nil {
			return translate("project", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	p, err := r.GetByID(ctx, project.ID)
	if err != nil {
		return nil, false, err
	}
	return p, created, nil
}

// GetByID loads the project with its owner and tasks.
func (r *GormProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := r.withRelations(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		return nil, translate("project", err)
	}
	return &p, nil
}

// ListForUser returns the user's projects; an unknown user has none.
func (r *GormProjectRepository) ListForUser(ctx context.Context, userID uint) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, translate("projects", err)
	}
	return projects, nil
}

// Delete removes the project, its tasks and their meeting links.
func (r *GormProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Select("id").First(&p, id).Error; err != nil {
			return translate("project", err)
		}

		if err := tx.Exec("DELETE FROM "+meetingTasksTable+" WHERE project_task_id IN (SELECT id FROM project_tasks WHERE project_id = ?)", id).Error; err != nil {
			return translate("meeting tasks", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTask{}).Error; err != nil {
			return translate("tasks", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return translate("project", err)
		}
		return nil
	})
}

func (r *GormProjectRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("project_tasks.id") }).
		Preload("Tasks.Project")
}
