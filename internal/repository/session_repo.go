package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.UserSession) error
	Deactivate(ctx context.Context, employeeID uuid.UUID, token string) error
	DeactivateAll(ctx context.Context, employeeID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *model.UserSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) Deactivate(ctx context.Context, employeeID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("employee_id = ? AND session_token = ?", employeeID, token).
		Update("is_active", false).Error
}

func (r *sessionRepo) DeactivateAll(ctx context.Context, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("employee_id = ?", employeeID).
		Update("is_active", false).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.UserSession{})
	return res.RowsAffected, res.Error
}
