package schema

import (
	"time"

	"github.com/kutbudev/alarmclock/pkg/models"
)

// DateLayout is the wire format of task deadlines.
const DateLayout = "2006-01-02"

// User is the public view of an account.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Project is the wire form of a project with its tasks expanded.
type Project struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	OwnerUsername string `json:"owner_username"`
	DisplayName   string `json:"display_name"`
	Description   string `json:"description"`
	Tasks         []Task `json:"tasks"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// Task is the wire form of a project task.
type Task struct {
	ID          uint    `json:"id"`
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	Status      int     `json:"status"`
	IsDailyTask bool    `json:"is_daily_task"`
	Deadline    *string `json:"deadline"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Meeting is the wire form of a meeting with its linked tasks expanded.
type Meeting struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Tasks       []Task `json:"tasks"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Note is the wire form of a meeting note.
type Note struct {
	ID        uint   `json:"id"`
	MeetingID uint   `json:"meeting_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FormatTime renders t as RFC 3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func FromUser(u *models.User) User {
	return User{ID: u.ID, Username: u.Username}
}

// FromProject converts a project loaded with its owner and tasks.
func FromProject(p *models.Project) Project {
	out := Project{
		ID:          p.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Description: p.Description,
		Tasks:       make([]Task, 0, len(p.Tasks)),
		CreatedAt:   FormatTime(p.CreatedAt),
		UpdatedAt:   FormatTime(p.UpdatedAt),
	}
	if p.User != nil {
		out.OwnerUsername = p.User.Username
	}
	for _, t := range p.Tasks {
		task := FromTask(t)
		if t.Project == nil {
			task.ProjectName = p.DisplayName
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out
}

func FromProjects(ps []*models.Project) []Project {
	out := make([]Project, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProject(p))
	}
	return out
}

// FromTask converts a task; ProjectName is filled when the project is loaded.
func FromTask(t *models.ProjectTask) Task {
	out := Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    int(t.Priority),
		Status:      int(t.Status),
		IsDailyTask: t.IsDailyTask,
		CreatedAt:   FormatTime(t.CreatedAt),
		UpdatedAt:   FormatTime(t.UpdatedAt),
	}
	if t.Project != nil {
		out.ProjectName = t.Project.DisplayName
	}
	if t.Deadline != nil {
		d := time.Time(*t.Deadline).Format(DateLayout)
		out.Deadline = &d
	}
	return out
}

func FromTasks(ts []*models.ProjectTask) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTask(t))
	}
	return out
}

func FromMeeting(m *models.Meeting) Meeting {
	return Meeting{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   FormatTime(m.StartTime),
		EndTime:     FormatTime(m.EndTime),
		Tasks:       FromTasks(m.Tasks),
		CreatedAt:   FormatTime(m.CreatedAt),
		UpdatedAt:   FormatTime(m.UpdatedAt),
	}
}

func FromMeetings(ms []*models.Meeting) []Meeting {
	out := make([]Meeting, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMeeting(m))
	}
	return out
}

func FromNote(n *models.Note) Note {
	return Note{
		ID:        n.ID,
		MeetingID: n.MeetingID,
		Content:   n.Content,
		CreatedAt: FormatTime(n.CreatedAt),
		UpdatedAt: FormatTime(n.UpdatedAt),
	}
}
