package models

import "time"

// Meeting is a scheduled meeting linked to any number of project tasks.
type Meeting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text;not null"`
	StartTime   time.Time `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Many-to-Many Relations
	Tasks []*ProjectTask `json:"tasks,omitempty" gorm:"many2many:meeting_tasks;constraint:OnDelete:CASCADE"`
}

// Note is the single editable note attached to a meeting.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MeetingID uint      `json:"meeting_id" gorm:"not null;uniqueIndex"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Meeting *Meeting `json:"meeting,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
}
