package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository implementation (usable with pool or tx).
// There is no serial number column: display order derives from created_at.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass a pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, code, unit_price, stock_quantity, unit_of_measurement, tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Code, product.UnitPrice, product.StockQuantity,
		product.UnitOfMeasurement, product.TaxRate, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCode fetches a product by catalog code.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getOne(`WHERE code = $1`, code)
}

func (r *ProductRepo) getOne(where string, arg any) (*entity.Product, error) {
	query := `
		SELECT id, name, code, unit_price, stock_quantity, unit_of_measurement, tax_rate, created_at, updated_at
		FROM products ` + where
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Code, &p.UnitPrice, &p.StockQuantity,
		&p.UnitOfMeasurement, &p.TaxRate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns products in creation order (the basis for derived serial numbers).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, code, unit_price, stock_quantity, unit_of_measurement, tax_rate, created_at, updated_at
		FROM products ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.UnitPrice, &p.StockQuantity,
			&p.UnitOfMeasurement, &p.TaxRate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update modifies a product.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, code = $3, unit_price = $4, stock_quantity = $5,
			unit_of_measurement = $6, tax_rate = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Code, product.UnitPrice, product.StockQuantity,
		product.UnitOfMeasurement, product.TaxRate, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
