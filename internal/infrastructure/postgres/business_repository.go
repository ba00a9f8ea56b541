package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo BusinessRepository implementation. The table holds at most one row.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository builds the adapter.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Get returns the issuer profile, or nil when none has been saved.
func (r *BusinessRepo) Get() (*entity.Business, error) {
	query := `
		SELECT id, name, address_line1, address_line2, city, state, pincode, gstin,
			phone, email, bank_name, account_number, ifsc, branch, created_at, updated_at
		FROM business LIMIT 1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query).Scan(
		&b.ID, &b.Name, &b.AddressLine1, &b.AddressLine2, &b.City, &b.State, &b.Pincode, &b.GSTIN,
		&b.Phone, &b.Email, &b.BankName, &b.AccountNumber, &b.IFSC, &b.Branch, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Upsert inserts or replaces the profile row.
func (r *BusinessRepo) Upsert(business *entity.Business) error {
	query := `
		INSERT INTO business (id, name, address_line1, address_line2, city, state, pincode, gstin,
			phone, email, bank_name, account_number, ifsc, branch, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, address_line1 = EXCLUDED.address_line1, address_line2 = EXCLUDED.address_line2,
			city = EXCLUDED.city, state = EXCLUDED.state, pincode = EXCLUDED.pincode, gstin = EXCLUDED.gstin,
			phone = EXCLUDED.phone, email = EXCLUDED.email, bank_name = EXCLUDED.bank_name,
			account_number = EXCLUDED.account_number, ifsc = EXCLUDED.ifsc, branch = EXCLUDED.branch,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.AddressLine1, business.AddressLine2, business.City,
		business.State, business.Pincode, business.GSTIN, business.Phone, business.Email,
		business.BankName, business.AccountNumber, business.IFSC, business.Branch,
		business.CreatedAt, business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert business: %w", err)
	}
	return nil
}
