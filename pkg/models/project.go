package models

import "time"

// Project represents a project in the system. Display names are unique per owner.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_projects_user_display_name"`
	DisplayName string    `json:"display_name" gorm:"not null;size:200;uniqueIndex:idx_projects_user_display_name"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Foreign Key Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// One-to-Many Relations
	Tasks []*ProjectTask `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
