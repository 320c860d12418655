package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
)

// CredentialsRequest is the body of /login and /signup.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

func (r *CredentialsRequest) Validate() []FieldError {
	if r.Username != "" && strings.TrimSpace(r.Username) == "" {
		return []FieldError{{Field: "username", Message: "must not be blank"}}
	}
	return nil
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	UserID      uint   `json:"user_id" binding:"required,gt=0"`
}

func (r *CreateProjectRequest) Validate() []FieldError {
	if r.Title != "" && strings.TrimSpace(r.Title) == "" {
		return []FieldError{{Field: "title", Message: "must not be blank"}}
	}
	return nil
}

// AddTaskRequest upserts a task by title; omitted fields keep their current
// value, or their default for a new task.
type AddTaskRequest struct {
	Title       string             `json:"title" binding:"required,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Priority    *models.Priority   `json:"priority" binding:"omitempty,oneof=0 1 2"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=0 1 2 3"`
	IsDailyTask *bool              `json:"is_daily_task"`
	Deadline    *Date              `json:"deadline"`
}

func (r *AddTaskRequest) Validate() []FieldError {
	if r.Title != "" && strings.TrimSpace(r.Title) == "" {
		return []FieldError{{Field: "title", Message: "must not be blank"}}
	}
	return nil
}

// Fields returns the supplied attributes other than the title.
func (r *AddTaskRequest) Fields() repository.TaskFields {
	return repository.TaskFields{
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		IsDailyTask: r.IsDailyTask,
		Deadline:    r.Deadline.TimePtr(),
	}
}

// EditTaskRequest overwrites the supplied fields of an existing task.
type EditTaskRequest struct {
	ProjectID   *uint              `json:"project_id" binding:"omitempty,gt=0"`
	Title       *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Priority    *models.Priority   `json:"priority" binding:"omitempty,oneof=0 1 2"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=0 1 2 3"`
	IsDailyTask *bool              `json:"is_daily_task"`
	Deadline    *Date              `json:"deadline"`
}

func (r *EditTaskRequest) Validate() []FieldError {
	if r.Title != nil && *r.Title != "" && strings.TrimSpace(*r.Title) == "" {
		return []FieldError{{Field: "title", Message: "must not be blank"}}
	}
	return nil
}

func (r *EditTaskRequest) Fields() repository.TaskFields {
	return repository.TaskFields{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		IsDailyTask: r.IsDailyTask,
		Deadline:    r.Deadline.TimePtr(),
	}
}

// CreateMeetingRequest accepts its own serialized Meeting: tasks may be ids
// or task objects.
type CreateMeetingRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Tasks       TaskRefs  `json:"tasks"`
}

func (r *CreateMeetingRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Title != "" && strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "must not be blank"})
	}
	if !r.StartTime.IsZero() && !r.EndTime.IsZero() && r.EndTime.Before(r.StartTime) {
		errs = append(errs, FieldError{Field: "end_time", Message: "must not be before start_time"})
	}
	return errs
}

// Meeting returns the meeting row described by the request.
func (r *CreateMeetingRequest) Meeting() *models.Meeting {
	return &models.Meeting{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		StartTime:   r.StartTime.UTC(),
		EndTime:     r.EndTime.UTC(),
	}
}

// LinkTasksRequest replaces a meeting's task set.
type LinkTasksRequest struct {
	TaskIDs TaskRefs `json:"task_ids" binding:"required"`
}

type EditNoteRequest struct {
	Content *string `json:"content" binding:"required,max=100000"`
}

var errInvalidDate = errors.New("must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")

// Date is a calendar date accepting "2006-01-02" or a full RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errInvalidDate
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// TimePtr returns the date as a *time.Time, nil for a nil Date.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// TaskRefs is a list of task ids decoded from ids or objects carrying an id.
type TaskRefs []uint

var errInvalidTaskRef = errors.New("must be a list of task ids or objects with an id")

func (r *TaskRefs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidTaskRef
	}
	ids := make(TaskRefs, 0, len(raw))
	for _, item := range raw {
		var id uint
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var obj struct {
			ID *uint `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.ID == nil {
			return errInvalidTaskRef
		}
		ids = append(ids, *obj.ID)
	}
	*r = ids
	return nil
}
