package dto

import "time"

// CreateCompanyRequest is the body of POST /api/companies.
type CreateCompanyRequest struct {
	Name          string `json:"name"`
	TaxPIN        string `json:"tax_pin"` // KRA PIN printed on invoices
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	CurrencyLabel string `json:"currency_label,omitempty"` // defaults to KES
}

// UpdateCompanyRequest is the body of PUT /api/companies/:id.
type UpdateCompanyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	CurrencyLabel string `json:"currency_label,omitempty"`
}

// CompanyResponse is a company in responses.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TaxPIN        string    `json:"tax_pin"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	CurrencyLabel string    `json:"currency_label"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanyListResponse is a paginated company listing.
type CompanyListResponse struct {
	Items  []CompanyResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
