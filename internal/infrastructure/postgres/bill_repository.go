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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo BillRepository implementation (usable with pool or tx).
// The customer snapshot lives denormalized on the bills row and each item is a
// bill_items row carrying its own product snapshot; finalized bills never join
// back to the live catalog.
type BillRepo struct {
	q Querier
}

// NewBillRepository builds the adapter. Pass a pool or tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persists the bill header and all item rows. Run inside a transaction
// (TxRunner) so both land atomically.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, bill_number, customer_id, customer_name, customer_phone, customer_email,
			customer_address, customer_gstin, bill_discount_type, bill_discount_value,
			subtotal, total_discount, total, note, payment_mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.BillNumber, bill.Customer.ID, bill.Customer.Name, bill.Customer.Phone,
		bill.Customer.Email, bill.Customer.Address, bill.Customer.GSTIN,
		bill.BillDiscountType, bill.BillDiscountValue,
		bill.Subtotal, bill.TotalDiscount, bill.Total, bill.Note, bill.PaymentMode, bill.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, position, product_id, product_name, product_code,
			quantity, unit_price, discount_type, discount_value, subtotal, discount_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i, item := range bill.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			bill.ID, i, item.ProductID, item.ProductName, item.ProductCode,
			item.Quantity, item.UnitPrice, item.DiscountType, item.DiscountValue,
			item.Subtotal, item.DiscountAmount, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert bill item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID fetches a bill with its items.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `
		SELECT id, bill_number, customer_id, customer_name, customer_phone, customer_email,
			customer_address, customer_gstin, bill_discount_type, bill_discount_value,
			subtotal, total_discount, total, note, payment_mode, created_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.BillNumber, &b.Customer.ID, &b.Customer.Name, &b.Customer.Phone,
		&b.Customer.Email, &b.Customer.Address, &b.Customer.GSTIN,
		&b.BillDiscountType, &b.BillDiscountValue,
		&b.Subtotal, &b.TotalDiscount, &b.Total, &b.Note, &b.PaymentMode, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	items, err := r.itemsByBillID(id)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

// List returns bills with their items, newest first.
func (r *BillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT id, bill_number, customer_id, customer_name, customer_phone, customer_email,
			customer_address, customer_gstin, bill_discount_type, bill_discount_value,
			subtotal, total_discount, total, note, payment_mode, created_at
		FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(
			&b.ID, &b.BillNumber, &b.Customer.ID, &b.Customer.Name, &b.Customer.Phone,
			&b.Customer.Email, &b.Customer.Address, &b.Customer.GSTIN,
			&b.BillDiscountType, &b.BillDiscountValue,
			&b.Subtotal, &b.TotalDiscount, &b.Total, &b.Note, &b.PaymentMode, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range list {
		items, err := r.itemsByBillID(b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return list, nil
}

func (r *BillRepo) itemsByBillID(billID string) ([]entity.BillItem, error) {
	query := `
		SELECT product_id, product_name, product_code, quantity, unit_price,
			discount_type, discount_value, subtotal, discount_amount, total
		FROM bill_items WHERE bill_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	var items []entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.ProductCode, &it.Quantity, &it.UnitPrice,
			&it.DiscountType, &it.DiscountValue, &it.Subtotal, &it.DiscountAmount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete removes a bill and its items.
func (r *BillRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM bill_items WHERE bill_id = $1`, id); err != nil {
		return fmt.Errorf("delete bill items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM bills WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}
