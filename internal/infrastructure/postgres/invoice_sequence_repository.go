package postgres

import (
	"context"
	"fmt"

	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.InvoiceSequenceRepository = (*InvoiceSequenceRepo)(nil)

// InvoiceSequenceRepo hands out invoice numbers per company, prefix and year.
// Always used inside the invoice creation transaction (tx Querier) so an
// aborted create rolls the claimed number back with it.
type InvoiceSequenceRepo struct {
	q Querier
}

// NewInvoiceSequenceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceSequenceRepository(q Querier) *InvoiceSequenceRepo {
	return &InvoiceSequenceRepo{q: q}
}

// NextNumber claims the next number atomically. The upsert takes a row lock
// on the sequence row, so concurrent creators serialize and no two committed
// invoices share a number.
func (r *InvoiceSequenceRepo) NextNumber(companyID, prefix string, year int) (int64, error) {
	const query = `
		INSERT INTO invoice_sequences (company_id, prefix, year, next_number)
		VALUES ($1, $2, $3, 2)
		ON CONFLICT (company_id, prefix, year)
		DO UPDATE SET next_number = invoice_sequences.next_number + 1
		RETURNING next_number - 1`
	var number int64
	if err := r.q.QueryRow(context.Background(), query, companyID, prefix, year).Scan(&number); err != nil {
		return 0, fmt.Errorf("claim invoice number: %w", err)
	}
	return number, nil
}
