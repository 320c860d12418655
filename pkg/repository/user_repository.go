package repository

import (
	"context"
	"time"

	"github.com/kutbudev/alarmclock/pkg/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository with gorm.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GormUserRepository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *models.User) error {
	return translate("user", r.db.WithContext(ctx).Create(u).Error)
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate("user", err)
	}
	return &u, nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate("user", err)
	}
	return &u, nil
}

// GormSessionRepository implements SessionRepository with gorm.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new GormSessionRepository.
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(ctx context.Context, s *models.Session) error {
	return translate("session", r.db.WithContext(ctx).Omit("User").Create(s).Error)
}

// GetByToken loads the session with its user.
func (r *GormSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&s).Error
	if err != nil {
		return nil, translate("session", err)
	}
	return &s, nil
}

func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return translate("session", r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error)
}

// DeleteExpired removes every session that expired at or before now.
func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	if res.Error != nil {
		return 0, translate("session", res.Error)
	}
	return res.RowsAffected, nil
}
