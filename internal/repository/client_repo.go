package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/dto"
	"tradecore/internal/model"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	CreateTx(tx *gorm.DB, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindByCode(ctx context.Context, code string) (*model.Client, error)
	FindActiveByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error)
	Update(ctx context.Context, c *model.Client) error
	UpdateTx(tx *gorm.DB, c *model.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) CreateTx(tx *gorm.DB, c *model.Client) error {
	return tx.Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) FindByCode(ctx context.Context, code string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("client_code = ?", code).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) FindActiveByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := tx.Where("id = ? AND is_active = ?", id, true).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Client{})

	switch filter.Active {
	case "false":
		q = q.Where("is_active = ?", false)
	case "all":
	default:
		q = q.Where("is_active = ?", true)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("full_name LIKE ? OR client_code LIKE ? OR phone LIKE ? OR email LIKE ?",
			like, like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&clients).Error
	return clients, total, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) UpdateTx(tx *gorm.DB, c *model.Client) error {
	return tx.Save(c).Error
}

func (r *clientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *clientRepo) SoftDeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Client{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *clientRepo) DB() *gorm.DB { return r.db }
