package entity

import "github.com/shopspring/decimal"

// InvoiceItem is one billable line on an invoice.
// SortOrder preserves display order; computation is order independent.
// On edit the whole item set is replaced atomically, never patched.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	VATPercent  decimal.Decimal // 0-100
	SortOrder   int
}
