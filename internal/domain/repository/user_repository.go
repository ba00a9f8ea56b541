package repository

import "github.com/billmint/billmint-api/internal/domain/entity"

// UserRepository persistence port for auth users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
