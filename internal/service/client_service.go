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

type ClientService interface {
	CreateClient(ctx context.Context, actorID uuid.UUID, req dto.CreateClientRequest, meta domain.RequestMeta) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error)
	UpdateClient(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateClientRequest, meta domain.RequestMeta) (*dto.ClientResponse, error)
	DeactivateClient(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error
}

type clientService struct {
	clients repository.ClientRepository
	audit   AuditService
}

func NewClientService(clients repository.ClientRepository, audit AuditService) ClientService {
	return &clientService{clients: clients, audit: audit}
}

// CreateClient generates the immutable client code and stamps the consent date
// when consent is given. Creation and its audit entry commit together.
func (s *clientService) CreateClient(ctx context.Context, actorID uuid.UUID, req dto.CreateClientRequest, meta domain.RequestMeta) (*dto.ClientResponse, error) {
	client := &model.Client{
		ClientCode:          newClientCode(),
		FullName:            req.FullName,
		Phone:               req.Phone,
		Email:               req.Email,
		Address:             req.Address,
		PersonalDataConsent: req.PersonalDataConsent,
		Notes:               req.Notes,
		CreatedBy:           &actorID,
		IsActive:            true,
	}
	if req.PersonalDataConsent {
		now := time.Now()
		client.ConsentDate = &now
	}

	txErr := runTx(ctx, s.clients.DB(), func(tx *gorm.DB) error {
		if err := s.clients.CreateTx(tx, client); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateKey
			}
			return &domain.PersistenceError{Op: "create_client", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionCreateClient,
			Table:      "clients",
			RecordID:   &client.ID,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := clientToResponse(client)
	return &resp, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, &domain.PersistenceError{Op: "get_client", Err: err}
	}
	resp := clientToResponse(client)
	return &resp, nil
}

func (s *clientService) ListClients(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clients, total, err := s.clients.List(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_clients", Err: err}
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientToResponse(&clients[i]))
	}
	return &dto.ClientListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateClientRequest, meta domain.RequestMeta) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, &domain.PersistenceError{Op: "update_client", Err: err}
	}

	old := map[string]interface{}{"full_name": client.FullName, "consent": client.PersonalDataConsent}

	if req.FullName != "" {
		client.FullName = req.FullName
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}
	if req.PersonalDataConsent != nil {
		client.PersonalDataConsent = *req.PersonalDataConsent
		if *req.PersonalDataConsent && client.ConsentDate == nil {
			now := time.Now()
			client.ConsentDate = &now
		}
	}

	txErr := runTx(ctx, s.clients.DB(), func(tx *gorm.DB) error {
		if err := s.clients.UpdateTx(tx, client); err != nil {
			return &domain.PersistenceError{Op: "update_client", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionUpdateClient,
			Table:      "clients",
			RecordID:   &id,
			OldValues:  old,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := clientToResponse(client)
	return &resp, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrClientNotFound
		}
		return &domain.PersistenceError{Op: "deactivate_client", Err: err}
	}
	return runTx(ctx, s.clients.DB(), func(tx *gorm.DB) error {
		if err := s.clients.SoftDeleteTx(tx, id); err != nil {
			return &domain.PersistenceError{Op: "deactivate_client", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionDeleteClient,
			Table:      "clients",
			RecordID:   &id,
			Meta:       meta,
		})
	})
}

func clientToResponse(c *model.Client) dto.ClientResponse {
	resp := dto.ClientResponse{
		ID:                  c.ID.String(),
		ClientCode:          c.ClientCode,
		FullName:            c.FullName,
		Phone:               c.Phone,
		Email:               c.Email,
		Address:             c.Address,
		PersonalDataConsent: c.PersonalDataConsent,
		Notes:               c.Notes,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
	}
	if c.ConsentDate != nil {
		d := c.ConsentDate.Format(time.RFC3339)
		resp.ConsentDate = &d
	}
	return resp
}
