package dto

import "github.com/shopspring/decimal"

// SubmitPaymentRequest is the body of POST /api/invoices/:id/payments.
// Proof bytes travel separately (multipart) and become ProofURL on success.
type SubmitPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"` // bank_transfer|mpesa|cash|cheque|other
	Reference   string          `json:"reference"`
	PaymentDate string          `json:"payment_date,omitempty"` // YYYY-MM-DD; defaults to today
}

// PaymentDecisionRequest is the body of approve/reject endpoints.
// Notes are optional on approval, mandatory on rejection.
type PaymentDecisionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// PaymentResponse is one ledger entry in responses.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference"`
	ProofURL      string          `json:"proof_url,omitempty"`
	Status        string          `json:"status"`
	ApprovalNotes string          `json:"approval_notes,omitempty"`
	ApprovedBy    string          `json:"approved_by,omitempty"`
	ApprovedAt    string          `json:"approved_at,omitempty"`
	SubmittedBy   string          `json:"submitted_by,omitempty"`
}
