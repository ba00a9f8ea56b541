package dto

import "time"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id. CreatedAt is immutable
// and not accepted here.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

// CustomerResponse customer in API responses.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
