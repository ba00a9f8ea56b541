package repository

import "github.com/billmint/billmint-api/internal/domain/entity"

// ProductRepository persistence port for catalog products.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// List returns products ordered by creation time (serial numbers are
	// derived from this order by the caller).
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
