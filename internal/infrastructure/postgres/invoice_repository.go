package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, company_id, client_id, prefix, invoice_no, date_issued, due_date,
	status, payment_status, subtotal, vat_total, grand_total, total_paid, balance_due,
	currency_label, client_name, client_email, client_phone, billing_address,
	notes, created_at, updated_at`

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, client_id, prefix, invoice_no, date_issued, due_date,
			status, payment_status, subtotal, vat_total, grand_total, total_paid, balance_due,
			currency_label, client_name, client_email, client_phone, billing_address,
			notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.Prefix, invoice.InvoiceNo,
		invoice.DateIssued, invoice.DueDate, invoice.Status, invoice.PaymentStatus,
		invoice.Subtotal, invoice.VATTotal, invoice.GrandTotal, invoice.TotalPaid, invoice.BalanceDue,
		invoice.CurrencyLabel, invoice.ClientName, nullIfEmpty(invoice.ClientEmail),
		nullIfEmpty(invoice.ClientPhone), nullIfEmpty(invoice.BillingAddress),
		nullIfEmpty(invoice.Notes), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one invoice line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, description, qty, unit_price, vat_percent, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Qty, item.UnitPrice, item.VATPercent, item.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID loads one invoice by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate loads the invoice with a row lock so concurrent ledger
// operations on the same invoice serialize. Only meaningful inside a tx.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *InvoiceRepo) getOne(query, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	var email, phone, address, notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.ClientID, &inv.Prefix, &inv.InvoiceNo,
		&inv.DateIssued, &inv.DueDate, &inv.Status, &inv.PaymentStatus,
		&inv.Subtotal, &inv.VATTotal, &inv.GrandTotal, &inv.TotalPaid, &inv.BalanceDue,
		&inv.CurrencyLabel, &inv.ClientName, &email, &phone, &address,
		&notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.ClientEmail = derefStr(email)
	inv.ClientPhone = derefStr(phone)
	inv.BillingAddress = derefStr(address)
	inv.Notes = derefStr(notes)
	return &inv, nil
}

// GetItemsByInvoiceID loads all lines of one invoice in display order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, qty, unit_price, vat_percent, sort_order
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order, id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Qty, &it.UnitPrice, &it.VATPercent, &it.SortOrder); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany lists invoices of the company, newest first, with optional
// client/status filters and pagination.
func (r *InvoiceRepo) ListByCompany(companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.PaymentStatus != "" {
		args = append(args, f.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY date_issued DESC, invoice_no DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var email, phone, address, notes *string
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.ClientID, &inv.Prefix, &inv.InvoiceNo,
			&inv.DateIssued, &inv.DueDate, &inv.Status, &inv.PaymentStatus,
			&inv.Subtotal, &inv.VATTotal, &inv.GrandTotal, &inv.TotalPaid, &inv.BalanceDue,
			&inv.CurrencyLabel, &inv.ClientName, &email, &phone, &address,
			&notes, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.ClientEmail = derefStr(email)
		inv.ClientPhone = derefStr(phone)
		inv.BillingAddress = derefStr(address)
		inv.Notes = derefStr(notes)
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update rewrites the header fields and the computed totals.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET due_date       = $2,
		    status         = $3,
		    payment_status = $4,
		    subtotal       = $5,
		    vat_total      = $6,
		    grand_total    = $7,
		    total_paid     = $8,
		    balance_due    = $9,
		    client_name    = $10,
		    client_email   = $11,
		    client_phone   = $12,
		    billing_address = $13,
		    notes          = $14,
		    updated_at     = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.DueDate, invoice.Status, invoice.PaymentStatus,
		invoice.Subtotal, invoice.VATTotal, invoice.GrandTotal, invoice.TotalPaid, invoice.BalanceDue,
		invoice.ClientName, nullIfEmpty(invoice.ClientEmail), nullIfEmpty(invoice.ClientPhone),
		nullIfEmpty(invoice.BillingAddress), nullIfEmpty(invoice.Notes), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateAggregates rewrites only the ledger-derived columns.
func (r *InvoiceRepo) UpdateAggregates(id string, totalPaid, balanceDue decimal.Decimal, paymentStatus, status string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET total_paid = $2, balance_due = $3, payment_status = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, totalPaid, balanceDue, paymentStatus, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice aggregates: %w", err)
	}
	return nil
}

// ReplaceItems swaps the item set atomically: delete everything, insert the
// new lines. Callers run this inside a transaction.
func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	for _, it := range items {
		it.InvoiceID = invoiceID
		if err := r.CreateItem(it); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the invoice; items go with it via FK cascade.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
