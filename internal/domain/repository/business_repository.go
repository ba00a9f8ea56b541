package repository

import "github.com/billmint/billmint-api/internal/domain/entity"

// BusinessRepository persistence port for the issuer profile (single row).
type BusinessRepository interface {
	// Get returns the profile, or nil if none has been saved yet.
	Get() (*entity.Business, error)
	// Upsert inserts the profile or replaces the existing one.
	Upsert(business *entity.Business) error
}
