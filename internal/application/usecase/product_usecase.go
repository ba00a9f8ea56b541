package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// ProductUseCase catalog product CRUD. Serial numbers are a derived display
// attribute: List renumbers the returned page densely starting at the page
// offset, following creation order. They are never persisted.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create adds a product. Name, code and a positive unit price (primary field
// or legacy alias) are required; the code must be unique.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unitPrice := in.EffectiveUnitPrice()
	if in.Name == "" || in.Code == "" || unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Code:              in.Code,
		UnitPrice:         unitPrice,
		StockQuantity:     in.StockQuantity,
		UnitOfMeasurement: in.UnitOfMeasurement,
		TaxRate:           in.TaxRate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID returns one product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List returns products in creation order with serial numbers reassigned
// densely: offset+1, offset+2, ... The sequence always matches creation order
// regardless of past deletions.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for i, p := range list {
		p.SerialNo = offset + i + 1
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update modifies a product.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	unitPrice := in.EffectiveUnitPrice()
	if in.Name == "" || in.Code == "" || unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if other, _ := uc.repo.GetByCode(in.Code); other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	product.Name = in.Name
	product.Code = in.Code
	product.UnitPrice = unitPrice
	product.StockQuantity = in.StockQuantity
	product.UnitOfMeasurement = in.UnitOfMeasurement
	product.TaxRate = in.TaxRate
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product. Bills keep their own item snapshots, so history
// is unaffected.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		SerialNo:          p.SerialNo,
		Name:              p.Name,
		Code:              p.Code,
		UnitPrice:         p.UnitPrice,
		StockQuantity:     p.StockQuantity,
		UnitOfMeasurement: p.UnitOfMeasurement,
		TaxRate:           p.TaxRate,
		CreatedAt:         p.CreatedAt,
	}
}
