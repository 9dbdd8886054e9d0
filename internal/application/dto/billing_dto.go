package dto

import "github.com/shopspring/decimal"

// ClientSnapshotRequest is the free-text client identity captured on the
// invoice. When ClientID is set the snapshot may be left empty and is
// filled from the client record.
type ClientSnapshotRequest struct {
	ClientID       string `json:"client_id,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
}

// InvoiceItemRequest is one line on a create/update invoice request.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATPercent  decimal.Decimal `json:"vat_percent"`
}

// CreateInvoiceRequest is the body of POST /api/invoices.
// Prefix is optional; the configured default applies when empty.
type CreateInvoiceRequest struct {
	Client  ClientSnapshotRequest `json:"client"`
	Prefix  string                `json:"prefix,omitempty"`
	DueDate string                `json:"due_date,omitempty"` // YYYY-MM-DD; default applied when empty
	Notes   string                `json:"notes,omitempty"`
	Items   []InvoiceItemRequest  `json:"items"`
}

// UpdateInvoiceRequest replaces the entire item set and header notes.
type UpdateInvoiceRequest struct {
	DueDate string               `json:"due_date,omitempty"`
	Notes   string               `json:"notes,omitempty"`
	Items   []InvoiceItemRequest `json:"items"`
}

// InvoiceItemResponse is one line of an invoice in responses.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATPercent  decimal.Decimal `json:"vat_percent"`
	LineTotal   decimal.Decimal `json:"line_total"`
	SortOrder   int             `json:"sort_order"`
}

// InvoiceResponse is the full invoice for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	ClientID       string                `json:"client_id,omitempty"`
	InvoiceNo      string                `json:"invoice_no"`
	DateIssued     string                `json:"date_issued"`
	DueDate        string                `json:"due_date"`
	Status         string                `json:"status"`
	PaymentStatus  string                `json:"payment_status"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	VATTotal       decimal.Decimal       `json:"vat_total"`
	GrandTotal     decimal.Decimal       `json:"grand_total"`
	TotalPaid      decimal.Decimal       `json:"total_paid"`
	BalanceDue     decimal.Decimal       `json:"balance_due"`
	CurrencyLabel  string                `json:"currency_label"`
	ClientName     string                `json:"client_name"`
	ClientEmail    string                `json:"client_email,omitempty"`
	ClientPhone    string                `json:"client_phone,omitempty"`
	BillingAddress string                `json:"billing_address,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
}
