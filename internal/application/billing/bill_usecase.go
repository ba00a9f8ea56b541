package billing

import (
	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// BillUseCase read access to the immutable bill history.
type BillUseCase struct {
	repo repository.BillRepository
}

// NewBillUseCase builds the use case.
func NewBillUseCase(repo repository.BillRepository) *BillUseCase {
	return &BillUseCase{repo: repo}
}

// GetByID returns one finalized bill with its items.
func (uc *BillUseCase) GetByID(id string) (*dto.BillResponse, error) {
	bill, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return toBillResponse(bill), nil
}

// List returns finalized bills, newest first.
func (uc *BillUseCase) List(limit, offset int) ([]*dto.BillResponse, error) {
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
	out := make([]*dto.BillResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBillResponse(b))
	}
	return out, nil
}

// Delete removes a bill from history.
func (uc *BillUseCase) Delete(id string) error {
	bill, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bill == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
