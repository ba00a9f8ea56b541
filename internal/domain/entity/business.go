package entity

import "time"

// Business is the issuer profile printed on invoices: identity, tax registration
// and bank details. Single row per deployment, read-only input to rendering.
type Business struct {
	ID            string
	Name          string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	Pincode       string
	GSTIN         string
	Phone         string
	Email         string
	BankName      string
	AccountNumber string
	IFSC          string
	Branch        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
