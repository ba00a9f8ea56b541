package dto

// SaveBusinessRequest body for PUT /api/business.
type SaveBusinessRequest struct {
	Name          string `json:"name"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	GSTIN         string `json:"gstin"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

// BusinessResponse issuer profile in API responses.
type BusinessResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AddressLine1  string `json:"address_line1,omitempty"`
	AddressLine2  string `json:"address_line2,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	Branch        string `json:"branch,omitempty"`
}
