package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
	"tradecore/internal/service"
)

type stubContentRepo struct {
	mu       sync.Mutex
	contents map[uuid.UUID]*model.WebsiteContent
}

var _ repository.ContentRepository = (*stubContentRepo)(nil)

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{contents: make(map[uuid.UUID]*model.WebsiteContent)}
}

func (r *stubContentRepo) FindByPageSection(_ context.Context, page, section string) (*model.WebsiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contents {
		if c.PageName == page && c.Section == section {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubContentRepo) ListByPage(_ context.Context, page string, publishedOnly bool) ([]model.WebsiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.WebsiteContent
	for _, c := range r.contents {
		if c.PageName != page {
			continue
		}
		if publishedOnly && !c.IsPublished {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubContentRepo) ListAll(_ context.Context) ([]model.WebsiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.WebsiteContent, 0, len(r.contents))
	for _, c := range r.contents {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubContentRepo) Create(_ context.Context, c *model.WebsiteContent) error {
	return r.CreateTx(nil, c)
}

func (r *stubContentRepo) CreateTx(_ *gorm.DB, c *model.WebsiteContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	c.UpdatedAt = time.Now()
	cp := *c
	r.contents[c.ID] = &cp
	return nil
}

func (r *stubContentRepo) Update(_ context.Context, c *model.WebsiteContent) error {
	return r.UpdateTx(nil, c)
}

func (r *stubContentRepo) UpdateTx(_ *gorm.DB, c *model.WebsiteContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contents[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	r.contents[c.ID] = &cp
	return nil
}

func (r *stubContentRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.DeleteTx(nil, id)
}

func (r *stubContentRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contents, id)
	return nil
}

func (r *stubContentRepo) DB() *gorm.DB { return nil }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpsertContentCreatesVersionOne(t *testing.T) {
	repo := newStubContentRepo()
	audit := &stubAuditSink{}
	svc := service.NewContentService(repo, audit)

	resp, err := svc.Upsert(context.Background(), uuid.New(), dto.UpsertContentRequest{
		PageName: "home",
		Section:  "hero",
		Content:  strPtr("Bienvenidos"),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, "text", resp.ContentType, "content type defaults to text")
	assert.True(t, resp.IsPublished, "new blocks are published unless told otherwise")
	assert.Equal(t, 1, audit.count())
}

func TestUpsertContentBumpsVersionOnSameKey(t *testing.T) {
	repo := newStubContentRepo()
	svc := service.NewContentService(repo, &stubAuditSink{})
	actor := uuid.New()

	first, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "home",
		Section:  "hero",
		Content:  strPtr("v1"),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	second, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "home",
		Section:  "hero",
		Content:  strPtr("v2"),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same page/section updates in place")
	assert.Equal(t, 2, second.Version)
	require.NotNil(t, second.Content)
	assert.Equal(t, "v2", *second.Content)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertContentKeepsContentWhenOnlyTogglingPublish(t *testing.T) {
	repo := newStubContentRepo()
	svc := service.NewContentService(repo, &stubAuditSink{})
	actor := uuid.New()

	_, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "about", Section: "history", Content: strPtr("texto"),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	resp, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "about", Section: "history", IsPublished: boolPtr(false),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	assert.False(t, resp.IsPublished)
	require.NotNil(t, resp.Content)
	assert.Equal(t, "texto", *resp.Content)
}

func TestGetPagePublishedOnlyFiltersDrafts(t *testing.T) {
	repo := newStubContentRepo()
	svc := service.NewContentService(repo, &stubAuditSink{})
	actor := uuid.New()

	_, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "home", Section: "hero", Content: strPtr("visible"),
	}, domain.RequestMeta{})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "home", Section: "promo", Content: strPtr("borrador"), IsPublished: boolPtr(false),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	public, err := svc.GetPage(context.Background(), "home", true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "hero", public[0].Section)

	admin, err := svc.GetPage(context.Background(), "home", false)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}

func TestDeleteContentRemovesBlock(t *testing.T) {
	repo := newStubContentRepo()
	audit := &stubAuditSink{}
	svc := service.NewContentService(repo, audit)
	actor := uuid.New()

	resp, err := svc.Upsert(context.Background(), actor, dto.UpsertContentRequest{
		PageName: "home", Section: "hero", Content: strPtr("x"),
	}, domain.RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), actor, uuid.MustParse(resp.ID), domain.RequestMeta{}))

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 2, audit.count())
}

func TestUpsertContentFailsWhenAuditWriteFails(t *testing.T) {
	svc := service.NewContentService(newStubContentRepo(), &stubAuditSink{failWith: errors.New("audit store down")})

	_, err := svc.Upsert(context.Background(), uuid.New(), dto.UpsertContentRequest{
		PageName: "home",
		Section:  "hero",
		Content:  strPtr("Bienvenidos"),
	}, domain.RequestMeta{})
	assert.Error(t, err, "the mutation and its audit entry commit together")
}
