package entity

import "time"

// Company is a tenant of the system. Its identity appears on invoice PDFs.
type Company struct {
	ID            string
	Name          string
	TaxPIN        string // KRA PIN shown on invoices
	Address       string
	Phone         string
	Email         string
	CurrencyLabel string // e.g. "KES"
	Status        string // active, suspended, inactive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
