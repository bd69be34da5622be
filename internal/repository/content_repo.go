package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/model"
)

type ContentRepository interface {
	FindByPageSection(ctx context.Context, page, section string) (*model.WebsiteContent, error)
	ListByPage(ctx context.Context, page string, publishedOnly bool) ([]model.WebsiteContent, error)
	ListAll(ctx context.Context) ([]model.WebsiteContent, error)
	Create(ctx context.Context, c *model.WebsiteContent) error
	CreateTx(tx *gorm.DB, c *model.WebsiteContent) error
	Update(ctx context.Context, c *model.WebsiteContent) error
	UpdateTx(tx *gorm.DB, c *model.WebsiteContent) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type contentRepo struct{ db *gorm.DB }

func NewContentRepository(db *gorm.DB) ContentRepository { return &contentRepo{db: db} }

func (r *contentRepo) FindByPageSection(ctx context.Context, page, section string) (*model.WebsiteContent, error) {
	var c model.WebsiteContent
	err := r.db.WithContext(ctx).Where("page_name = ? AND section = ?", page, section).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contentRepo) ListByPage(ctx context.Context, page string, publishedOnly bool) ([]model.WebsiteContent, error) {
	var contents []model.WebsiteContent
	q := r.db.WithContext(ctx).Where("page_name = ?", page)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	err := q.Order("section ASC").Find(&contents).Error
	return contents, err
}

func (r *contentRepo) ListAll(ctx context.Context) ([]model.WebsiteContent, error) {
	var contents []model.WebsiteContent
	err := r.db.WithContext(ctx).Order("page_name ASC, section ASC").Find(&contents).Error
	return contents, err
}

func (r *contentRepo) Create(ctx context.Context, c *model.WebsiteContent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contentRepo) CreateTx(tx *gorm.DB, c *model.WebsiteContent) error {
	return tx.Create(c).Error
}

func (r *contentRepo) Update(ctx context.Context, c *model.WebsiteContent) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contentRepo) UpdateTx(tx *gorm.DB, c *model.WebsiteContent) error {
	return tx.Save(c).Error
}

func (r *contentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WebsiteContent{}, "id = ?", id).Error
}

func (r *contentRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.WebsiteContent{}, "id = ?", id).Error
}

func (r *contentRepo) DB() *gorm.DB { return r.db }
