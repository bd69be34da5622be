package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/service"
)

var clientCodeRe = regexp.MustCompile(`^C\d{8}[0-9A-F]{8}$`)

func TestCreateClientGeneratesCodeAndStampsConsent(t *testing.T) {
	repo := newStubClientRepo()
	audit := &stubAuditSink{}
	svc := service.NewClientService(repo, audit)
	actor := uuid.New()

	resp, err := svc.CreateClient(context.Background(), actor, dto.CreateClientRequest{
		FullName:            "Ana Gomez",
		PersonalDataConsent: true,
	}, domain.RequestMeta{})
	require.NoError(t, err)

	assert.Regexp(t, clientCodeRe, resp.ClientCode)
	assert.True(t, resp.PersonalDataConsent)
	assert.NotNil(t, resp.ConsentDate, "consent date stamped on creation with consent")
	assert.True(t, resp.IsActive)
	assert.Len(t, audit.byAction(service.ActionCreateClient), 1)
}

func TestCreateClientWithoutConsentHasNoConsentDate(t *testing.T) {
	svc := service.NewClientService(newStubClientRepo(), &stubAuditSink{})

	resp, err := svc.CreateClient(context.Background(), uuid.New(), dto.CreateClientRequest{
		FullName: "Luis Perez",
	}, domain.RequestMeta{})
	require.NoError(t, err)
	assert.False(t, resp.PersonalDataConsent)
	assert.Nil(t, resp.ConsentDate)
}

func TestUpdateClientGrantingConsentStampsDate(t *testing.T) {
	repo := newStubClientRepo()
	svc := service.NewClientService(repo, &stubAuditSink{})
	actor := uuid.New()

	created, err := svc.CreateClient(context.Background(), actor, dto.CreateClientRequest{FullName: "Luis Perez"}, domain.RequestMeta{})
	require.NoError(t, err)

	consent := true
	updated, err := svc.UpdateClient(context.Background(), actor, uuid.MustParse(created.ID), dto.UpdateClientRequest{
		PersonalDataConsent: &consent,
	}, domain.RequestMeta{})
	require.NoError(t, err)
	assert.True(t, updated.PersonalDataConsent)
	assert.NotNil(t, updated.ConsentDate)
}

func TestDeactivateClientSoftDeletes(t *testing.T) {
	repo := newStubClientRepo()
	svc := service.NewClientService(repo, &stubAuditSink{})
	actor := uuid.New()

	created, err := svc.CreateClient(context.Background(), actor, dto.CreateClientRequest{FullName: "Ana"}, domain.RequestMeta{})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.DeactivateClient(context.Background(), actor, id, domain.RequestMeta{}))

	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestGetClientNotFound(t *testing.T) {
	svc := service.NewClientService(newStubClientRepo(), &stubAuditSink{})
	_, err := svc.GetClient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestDeactivateClientFailsWhenAuditWriteFails(t *testing.T) {
	repo := newStubClientRepo(&model.Client{FullName: "Ana Gomez", IsActive: true})
	svc := service.NewClientService(repo, &stubAuditSink{failWith: errors.New("audit store down")})

	var id uuid.UUID
	for cid := range repo.clients {
		id = cid
	}

	err := svc.DeactivateClient(context.Background(), uuid.New(), id, domain.RequestMeta{})
	assert.Error(t, err, "the mutation and its audit entry commit together")
}
