package repository

import "github.com/billmint/billmint-api/internal/domain/entity"

// BillRepository persistence port for finalized bills. Bills are immutable
// once created; there is no update.
type BillRepository interface {
	// Create persists the bill header and all item snapshots.
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	List(limit, offset int) ([]*entity.Bill, error)
	Delete(id string) error
}
