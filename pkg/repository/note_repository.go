package repository

import (
	"context"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/gorm"
)

// GormNoteRepository implements NoteRepository with gorm.
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new GormNoteRepository.
func NewNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

func (r *GormNoteRepository) GetOrCreate(ctx context.Context, meetingID uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return getOrCreateNote(tx, meetingID, &note)
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *GormNoteRepository) Update(ctx context.Context, meetingID uint, content string) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getOrCreateNote(tx, meetingID, &note); err != nil {
			return err
		}
		note.Content = content
		return translate("note", tx.Omit("Meeting").Save(&note).Error)
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func getOrCreateNote(tx *gorm.DB, meetingID uint, note *models.Note) error {
	if err := tx.Select("id").First(&models.Meeting{}, meetingID).Error; err != nil {
		return translate("meeting", err)
	}
	err := tx.Omit("Meeting").
		Where(models.Note{MeetingID: meetingID}).
		FirstOrCreate(note).Error
	return translate("note", err)
}
