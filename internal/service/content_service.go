package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
)

// ContentService manages the content-managed blocks of the public web pages.
// Upserts are keyed by (page, section); every update bumps the version.
type ContentService interface {
	Upsert(ctx context.Context, actorID uuid.UUID, req dto.UpsertContentRequest, meta domain.RequestMeta) (*dto.ContentResponse, error)
	GetPage(ctx context.Context, page string, publishedOnly bool) ([]dto.ContentResponse, error)
	ListAll(ctx context.Context) ([]dto.ContentResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error
}

type contentService struct {
	contents repository.ContentRepository
	audit    AuditService
}

func NewContentService(contents repository.ContentRepository, audit AuditService) ContentService {
	return &contentService{contents: contents, audit: audit}
}

func (s *contentService) Upsert(ctx context.Context, actorID uuid.UUID, req dto.UpsertContentRequest, meta domain.RequestMeta) (*dto.ContentResponse, error) {
	existing, err := s.contents.FindByPageSection(ctx, req.PageName, req.Section)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.PersistenceError{Op: "upsert_content", Err: err}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "text"
	}

	var record *model.WebsiteContent
	if existing == nil {
		record = &model.WebsiteContent{
			PageName:    req.PageName,
			Section:     req.Section,
			ContentType: contentType,
			Content:     req.Content,
			Metadata:    req.Metadata,
			IsPublished: req.IsPublished == nil || *req.IsPublished,
			Version:     1,
			CreatedBy:   &actorID,
		}
	} else {
		record = existing
		record.ContentType = contentType
		if req.Content != nil {
			record.Content = req.Content
		}
		if req.Metadata != nil {
			record.Metadata = req.Metadata
		}
		if req.IsPublished != nil {
			record.IsPublished = *req.IsPublished
		}
		record.Version++
	}

	txErr := runTx(ctx, s.contents.DB(), func(tx *gorm.DB) error {
		var err error
		if existing == nil {
			err = s.contents.CreateTx(tx, record)
		} else {
			err = s.contents.UpdateTx(tx, record)
		}
		if err != nil {
			return &domain.PersistenceError{Op: "upsert_content", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionUpdateContent,
			Table:      "website_content",
			RecordID:   &record.ID,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := contentToResponse(record)
	return &resp, nil
}

func (s *contentService) GetPage(ctx context.Context, page string, publishedOnly bool) ([]dto.ContentResponse, error) {
	contents, err := s.contents.ListByPage(ctx, page, publishedOnly)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get_page", Err: err}
	}
	resp := make([]dto.ContentResponse, 0, len(contents))
	for i := range contents {
		resp = append(resp, contentToResponse(&contents[i]))
	}
	return resp, nil
}

func (s *contentService) ListAll(ctx context.Context) ([]dto.ContentResponse, error) {
	contents, err := s.contents.ListAll(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_content", Err: err}
	}
	resp := make([]dto.ContentResponse, 0, len(contents))
	for i := range contents {
		resp = append(resp, contentToResponse(&contents[i]))
	}
	return resp, nil
}

func (s *contentService) Delete(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error {
	return runTx(ctx, s.contents.DB(), func(tx *gorm.DB) error {
		if err := s.contents.DeleteTx(tx, id); err != nil {
			return &domain.PersistenceError{Op: "delete_content", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionUpdateContent,
			Table:      "website_content",
			RecordID:   &id,
			OldValues:  map[string]interface{}{"deleted": true},
			Meta:       meta,
		})
	})
}

func contentToResponse(c *model.WebsiteContent) dto.ContentResponse {
	return dto.ContentResponse{
		ID:          c.ID.String(),
		PageName:    c.PageName,
		Section:     c.Section,
		ContentType: c.ContentType,
		Content:     c.Content,
		Metadata:    c.Metadata,
		IsPublished: c.IsPublished,
		Version:     c.Version,
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}
