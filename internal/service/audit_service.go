package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
)

// Audit action tags.
const (
	ActionCreateOrder       = "CREATE_ORDER"
	ActionUpdateOrderStatus = "UPDATE_ORDER_STATUS"
	ActionCreateClient      = "CREATE_CLIENT"
	ActionUpdateClient      = "UPDATE_CLIENT"
	ActionDeleteClient      = "DELETE_CLIENT"
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionAdjustStock       = "ADJUST_STOCK"
	ActionUpdateContent     = "UPDATE_CONTENT"
	ActionLoginSuccess      = "LOGIN_SUCCESS"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionLoginBlocked      = "LOGIN_BLOCKED"
	ActionLogout            = "LOGOUT"
	ActionPasswordChange    = "PASSWORD_CHANGE"
	ActionCreateUser        = "CREATE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
)

// AuditEntry is the structured action record accepted by the sink. OldValues
// and NewValues are serialized to JSON snapshots on write.
type AuditEntry struct {
	EmployeeID *uuid.UUID
	Action     string
	Table      string
	RecordID   *uuid.UUID
	OldValues  interface{}
	NewValues  interface{}
	Meta       domain.RequestMeta
}

// AuditService is the append-only audit sink. RecordTx participates in the
// caller's transaction (fail-together by the engine's choice); Record is the
// standalone variant for callers outside a business transaction, who are
// expected to log-and-swallow its error rather than abort their operation.
type AuditService interface {
	RecordTx(tx *gorm.DB, entry AuditEntry) error
	Record(ctx context.Context, entry AuditEntry) error
	List(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error)
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) RecordTx(tx *gorm.DB, entry AuditEntry) error {
	return s.repo.CreateTx(tx, toAuditModel(entry))
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) error {
	return s.repo.Create(ctx, toAuditModel(entry))
}

func (s *auditService) List(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_audit", Err: err}
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditToResponse(&e))
	}
	return &dto.AuditListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *auditService) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "purge_audit", Err: err}
	}
	return deleted, nil
}

func toAuditModel(entry AuditEntry) *model.AuditLog {
	m := &model.AuditLog{
		EmployeeID: entry.EmployeeID,
		Action:     entry.Action,
		RecordID:   entry.RecordID,
	}
	if entry.Table != "" {
		m.Entity = &entry.Table
	}
	m.OldValues = marshalSnapshot(entry.OldValues)
	m.NewValues = marshalSnapshot(entry.NewValues)
	if entry.Meta.IP != "" {
		m.IPAddress = &entry.Meta.IP
	}
	if entry.Meta.UserAgent != "" {
		m.UserAgent = &entry.Meta.UserAgent
	}
	return m
}

func marshalSnapshot(v interface{}) *string {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func auditToResponse(e *model.AuditLog) dto.AuditEntryResponse {
	resp := dto.AuditEntryResponse{
		ID:        e.ID.String(),
		Action:    e.Action,
		TableName: e.Entity,
		OldValues: e.OldValues,
		NewValues: e.NewValues,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
	if e.EmployeeID != nil {
		id := e.EmployeeID.String()
		resp.EmployeeID = &id
	}
	if e.RecordID != nil {
		id := e.RecordID.String()
		resp.RecordID = &id
	}
	return resp
}
