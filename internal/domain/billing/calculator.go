// Package billing holds the pure invoice arithmetic: line totals, invoice
// aggregates and status derivation. Everything here is side-effect free and
// uses decimal arithmetic so balance comparisons (balance_due == 0) are
// exact after repeated summation.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineInput is one line item for total computation.
type LineInput struct {
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	VATPercent  decimal.Decimal // flat VAT-style percentage, 0-100
}

// Totals is the invoice aggregate: GrandTotal = Subtotal + VATTotal always.
type Totals struct {
	Subtotal   decimal.Decimal
	VATTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineTotal returns qty × unit_price × (1 + vat/100) for a single line.
func LineTotal(l LineInput) decimal.Decimal {
	net := l.Qty.Mul(l.UnitPrice)
	return net.Add(net.Mul(l.VATPercent).Div(hundred))
}

// ValidateItems enforces the invoice item rules: at least one item, every
// description non-blank, qty and unit price non-negative, VAT in [0,100].
// Out-of-range VAT is rejected here, never clamped.
func ValidateItems(items []LineInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			return domain.ErrInvalidInput
		}
		if it.Qty.IsNegative() || it.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		if it.VATPercent.IsNegative() || it.VATPercent.GreaterThan(hundred) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// ComputeTotals validates the item set and rolls it up:
//
//	subtotal  = Σ qty × unit_price
//	vat_total = Σ qty × unit_price × vat/100
//
// A qty or price of zero contributes zero, it is not an error. The result
// is invariant under reordering of items.
func ComputeTotals(items []LineInput) (Totals, error) {
	if err := ValidateItems(items); err != nil {
		return Totals{}, err
	}
	subtotal := decimal.Zero
	vatTotal := decimal.Zero
	for _, it := range items {
		net := it.Qty.Mul(it.UnitPrice)
		subtotal = subtotal.Add(net)
		vatTotal = vatTotal.Add(net.Mul(it.VATPercent).Div(hundred))
	}
	return Totals{
		Subtotal:   subtotal,
		VATTotal:   vatTotal,
		GrandTotal: subtotal.Add(vatTotal),
	}, nil
}

// ItemInputs converts persisted items back to calculator inputs (used when
// recomputing totals after an edit).
func ItemInputs(items []*entity.InvoiceItem) []LineInput {
	in := make([]LineInput, 0, len(items))
	for _, it := range items {
		in = append(in, LineInput{
			Description: it.Description,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			VATPercent:  it.VATPercent,
		})
	}
	return in
}
