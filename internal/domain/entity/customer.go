package entity

import "time"

// Customer is a billing party. CreatedAt is immutable once set.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	GSTIN     string // GST registration id, optional
	CreatedAt time.Time
	UpdatedAt time.Time
}
