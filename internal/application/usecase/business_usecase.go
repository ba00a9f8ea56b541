package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// BusinessUseCase issuer profile get/update (single row per deployment).
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase builds the use case.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// Get returns the issuer profile, or ErrNotFound when none is configured yet.
func (uc *BusinessUseCase) Get() (*dto.BusinessResponse, error) {
	business, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return toBusinessResponse(business), nil
}

// Save creates or replaces the issuer profile.
func (uc *BusinessUseCase) Save(in dto.SaveBusinessRequest) (*dto.BusinessResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	business, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if business == nil {
		business = &entity.Business{ID: uuid.New().String(), CreatedAt: now}
	}
	business.Name = in.Name
	business.AddressLine1 = in.AddressLine1
	business.AddressLine2 = in.AddressLine2
	business.City = in.City
	business.State = in.State
	business.Pincode = in.Pincode
	business.GSTIN = in.GSTIN
	business.Phone = in.Phone
	business.Email = in.Email
	business.BankName = in.BankName
	business.AccountNumber = in.AccountNumber
	business.IFSC = in.IFSC
	business.Branch = in.Branch
	business.UpdatedAt = now
	if err := uc.repo.Upsert(business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:            b.ID,
		Name:          b.Name,
		AddressLine1:  b.AddressLine1,
		AddressLine2:  b.AddressLine2,
		City:          b.City,
		State:         b.State,
		Pincode:       b.Pincode,
		GSTIN:         b.GSTIN,
		Phone:         b.Phone,
		Email:         b.Email,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		IFSC:          b.IFSC,
		Branch:        b.Branch,
	}
}
