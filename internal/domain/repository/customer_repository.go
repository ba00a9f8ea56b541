package repository

import "github.com/billmint/billmint-api/internal/domain/entity"

// CustomerRepository persistence port for billing customers.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
