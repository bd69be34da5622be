package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
)

type ProductService interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest, meta domain.RequestMeta) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetProductBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProductRequest, meta domain.RequestMeta) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error
	ReactivateProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	audit    AuditService
}

func NewProductService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	audit AuditService,
) ProductService {
	return &productService{products: products, orders: orders, audit: audit}
}

func (s *productService) CreateProduct(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest, meta domain.RequestMeta) (*dto.ProductResponse, error) {
	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		Supplier:    req.Supplier,
		Barcode:     req.Barcode,
		IsActive:    true,
	}
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.CreateTx(tx, product); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateKey
			}
			return &domain.PersistenceError{Op: "create_product", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionCreateProduct,
			Table:      "products",
			RecordID:   &product.ID,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, &domain.PersistenceError{Op: "get_product", Err: err}
	}
	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) GetProductBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, &domain.PersistenceError{Op: "get_product", Err: err}
	}
	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_products", Err: err}
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateProduct never touches Quantity — stock moves only through the
// inventory ledger. SKU is immutable.
func (s *productService) UpdateProduct(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProductRequest, meta domain.RequestMeta) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, &domain.PersistenceError{Op: "update_product", Err: err}
	}

	old := map[string]interface{}{"name": product.Name, "unit_price": product.UnitPrice}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.MinQuantity != nil {
		product.MinQuantity = *req.MinQuantity
	}
	if req.MaxQuantity != nil {
		product.MaxQuantity = *req.MaxQuantity
	}
	if req.Supplier != nil {
		product.Supplier = req.Supplier
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.UpdateTx(tx, product); err != nil {
			return &domain.PersistenceError{Op: "update_product", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionUpdateProduct,
			Table:      "products",
			RecordID:   &id,
			OldValues:  old,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := productToResponse(product)
	return &resp, nil
}

// DeactivateProduct soft-deletes, but only once no open (pending/processing)
// orders reference the product.
func (s *productService) DeactivateProduct(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return &domain.PersistenceError{Op: "deactivate_product", Err: err}
	}

	open, err := s.orders.CountOpenByProduct(ctx, id)
	if err != nil {
		return &domain.PersistenceError{Op: "deactivate_product", Err: err}
	}
	if open > 0 {
		return domain.ErrOpenOrdersExist
	}

	return runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.SoftDeleteTx(tx, id); err != nil {
			return &domain.PersistenceError{Op: "deactivate_product", Err: err}
		}
		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionDeleteProduct,
			Table:      "products",
			RecordID:   &id,
			Meta:       meta,
		})
	})
}

func (s *productService) ReactivateProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Reactivate(ctx, id); err != nil {
		return &domain.PersistenceError{Op: "reactivate_product", Err: err}
	}
	return nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		UnitPrice:   p.UnitPrice,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		MaxQuantity: p.MaxQuantity,
		Supplier:    p.Supplier,
		Barcode:     p.Barcode,
		IsActive:    p.IsActive,
	}
}
