package repository

import "gorm.io/gorm"

// Repositories bundles the gorm-backed repositories sharing one connection.
type Repositories struct {
	Users    UserRepository
	Sessions SessionRepository
	Projects ProjectRepository
	Tasks    TaskRepository
	Meetings MeetingRepository
	Notes    NoteRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Sessions: NewSessionRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
		Meetings: NewMeetingRepository(db),
		Notes:    NewNoteRepository(db),
	}
}
