package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/service"
)

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newStubProductRepo(activeProduct("SKU-A", 50, 10))
	svc := service.NewProductService(repo, newStubOrderRepo(), &stubAuditSink{})

	_, err := svc.CreateProduct(context.Background(), uuid.New(), dto.CreateProductRequest{
		SKU:       "SKU-A",
		Name:      "Duplicado",
		Category:  "general",
		UnitPrice: decimal.NewFromInt(10),
	}, domain.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestUpdateProductNeverTouchesQuantity(t *testing.T) {
	p := activeProduct("SKU-A", 50, 42)
	repo := newStubProductRepo(p)
	svc := service.NewProductService(repo, newStubOrderRepo(), &stubAuditSink{})

	price := decimal.NewFromInt(99)
	resp, err := svc.UpdateProduct(context.Background(), uuid.New(), p.ID, dto.UpdateProductRequest{
		Name:      "Renombrado",
		UnitPrice: &price,
	}, domain.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, "Renombrado", resp.Name)
	assert.True(t, resp.UnitPrice.Equal(price))
	assert.Equal(t, "SKU-A", resp.SKU, "sku is immutable")
	assert.Equal(t, 42, repo.quantity(p.ID), "stock moves only through the ledger")
}

func TestDeactivateProductBlockedByOpenOrders(t *testing.T) {
	p := activeProduct("SKU-A", 50, 10)
	productRepo := newStubProductRepo(p)
	orderRepo := newStubOrderRepo()
	audit := &stubAuditSink{}
	productSvc := service.NewProductService(productRepo, orderRepo, audit)

	inventory := service.NewInventoryService(productRepo, audit)
	orderSvc := service.NewOrderService(orderRepo, newStubClientRepo(), inventory, audit)
	actor := uuid.New()

	resp, err := orderSvc.CreateOrder(context.Background(), actor, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	}, domain.RequestMeta{})
	require.NoError(t, err)

	err = productSvc.DeactivateProduct(context.Background(), actor, p.ID, domain.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrOpenOrdersExist)

	// Once the order reaches a terminal state the product can be retired
	require.NoError(t, orderSvc.TransitionStatus(context.Background(), uuid.MustParse(resp.ID), domain.StatusCancelled, actor, domain.RequestMeta{}))
	require.NoError(t, productSvc.DeactivateProduct(context.Background(), actor, p.ID, domain.RequestMeta{}))

	stored, err := productRepo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestGetProductBySKU(t *testing.T) {
	p := activeProduct("SKU-A", 50, 10)
	svc := service.NewProductService(newStubProductRepo(p), newStubOrderRepo(), &stubAuditSink{})

	resp, err := svc.GetProductBySKU(context.Background(), "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), resp.ID)

	_, err = svc.GetProductBySKU(context.Background(), "SKU-X")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProductFailsWhenAuditWriteFails(t *testing.T) {
	p := activeProduct("SKU-A", 50, 10)
	repo := newStubProductRepo(p)
	svc := service.NewProductService(repo, newStubOrderRepo(), &stubAuditSink{failWith: errors.New("audit store down")})

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), p.ID, dto.UpdateProductRequest{
		Name: "Renombrado",
	}, domain.RequestMeta{})
	assert.Error(t, err, "the mutation and its audit entry commit together")
}
