package models

import (
	"time"

	"gorm.io/datatypes"
)

// Priority represents the priority of a task
type Priority int

const (
	PriorityHigh   Priority = 0
	PriorityMedium Priority = 1
	PriorityLow    Priority = 2
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// TaskStatus represents the status of a task
type TaskStatus int

const (
	TaskStatusTODO       TaskStatus = 0
	TaskStatusInProgress TaskStatus = 1
	TaskStatusCompleted  TaskStatus = 2
	TaskStatusDropped    TaskStatus = 3
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s >= TaskStatusTODO && s <= TaskStatusDropped
}

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusTODO:
		return "TODO"
	case TaskStatusInProgress:
		return "IN_PROGRESS"
	case TaskStatusCompleted:
		return "COMPLETED"
	case TaskStatusDropped:
		return "DROPPED"
	default:
		return "UNKNOWN"
	}
}

// ProjectTask is a task owned by a project. Titles are unique within a project.
//
// Priority and Status carry no column default: gorm skips zero values on
// insert when a default exists, which would turn HIGH/TODO into the default.
type ProjectTask struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ProjectID   uint            `json:"project_id" gorm:"not null;uniqueIndex:idx_project_tasks_project_title"`
	Title       string          `json:"title" gorm:"not null;size:200;uniqueIndex:idx_project_tasks_project_title"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Priority    Priority        `json:"priority" gorm:"not null"`
	Status      TaskStatus      `json:"status" gorm:"not null"`
	IsDailyTask bool            `json:"is_daily_task" gorm:"not null"`
	Deadline    *datatypes.Date `json:"deadline,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Foreign Key Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Meetings []*Meeting `json:"meetings,omitempty" gorm:"many2many:meeting_tasks;constraint:OnDelete:CASCADE"`
}

// NewProjectTask returns a task with the default priority and status.
func NewProjectTask(projectID uint, title string) *ProjectTask {
	return &ProjectTask{
		ProjectID: projectID,
		Title:     title,
		Priority:  PriorityMedium,
		Status:    TaskStatusTODO,
	}
}
