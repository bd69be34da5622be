package service_test

import (
	"context"
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

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, entry *model.AuditLog) error {
	return r.store(entry)
}

func (r *stubAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	return r.store(entry)
}

func (r *stubAuditRepo) store(entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.New()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, filter dto.AuditFilter) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AuditLog
	for _, e := range r.entries {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *stubAuditRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	var deleted int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

func (r *stubAuditRepo) DB() *gorm.DB { return nil }

func TestRecordSerializesSnapshotsAndMeta(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := service.NewAuditService(repo)
	actor := uuid.New()
	record := uuid.New()

	err := svc.Record(context.Background(), service.AuditEntry{
		EmployeeID: &actor,
		Action:     service.ActionAdjustStock,
		Table:      "products",
		RecordID:   &record,
		NewValues:  map[string]int{"delta": -3},
		Meta:       domain.RequestMeta{IP: "10.0.0.8", UserAgent: "curl/8.0"},
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	stored := repo.entries[0]
	assert.Equal(t, service.ActionAdjustStock, stored.Action)
	require.NotNil(t, stored.NewValues)
	assert.JSONEq(t, `{"delta":-3}`, *stored.NewValues)
	require.NotNil(t, stored.IPAddress)
	assert.Equal(t, "10.0.0.8", *stored.IPAddress)
	assert.Nil(t, stored.OldValues)
}

func TestListDefaultsPagination(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := service.NewAuditService(repo)
	require.NoError(t, svc.Record(context.Background(), service.AuditEntry{Action: service.ActionLogout}))

	resp, err := svc.List(context.Background(), dto.AuditFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	assert.Equal(t, int64(1), resp.Total)
}

func TestPurgeOlderThanDropsOnlyExpiredEntries(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := service.NewAuditService(repo)

	repo.entries = append(repo.entries, model.AuditLog{
		ID:        uuid.New(),
		Action:    service.ActionLoginFailed,
		CreatedAt: time.Now().AddDate(0, 0, -400),
	})
	require.NoError(t, svc.Record(context.Background(), service.AuditEntry{Action: service.ActionLoginSuccess}))

	deleted, err := svc.PurgeOlderThan(context.Background(), 365*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, service.ActionLoginSuccess, repo.entries[0].Action)
}
