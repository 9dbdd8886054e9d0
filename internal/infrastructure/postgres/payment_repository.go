package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, invoice_id, amount_paid, payment_date, method, reference, proof_url,
	status, approval_notes, approved_by, approved_at, submitted_by, created_at, updated_at`

// Create persists a new payment submission.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, invoice_id, amount_paid, payment_date, method, reference, proof_url,
			status, approval_notes, approved_by, approved_at, submitted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.AmountPaid, payment.PaymentDate,
		payment.Method, payment.Reference, nullIfEmpty(payment.ProofURL),
		payment.Status, nullIfEmpty(payment.ApprovalNotes), nullIfEmpty(payment.ApprovedBy),
		payment.ApprovedAt, payment.SubmittedBy, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID loads one payment.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate loads the payment with a row lock so two concurrent
// decisions on it serialize. Only meaningful inside a tx.
func (r *PaymentRepo) GetByIDForUpdate(id string) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *PaymentRepo) getOne(query, id string) (*entity.Payment, error) {
	var p entity.Payment
	var proofURL, notes, approvedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.InvoiceID, &p.AmountPaid, &p.PaymentDate, &p.Method, &p.Reference, &proofURL,
		&p.Status, &notes, &approvedBy, &p.ApprovedAt, &p.SubmittedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.ProofURL = derefStr(proofURL)
	p.ApprovalNotes = derefStr(notes)
	p.ApprovedBy = derefStr(approvedBy)
	return &p, nil
}

// ListByInvoice returns the full ledger of one invoice, oldest first.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_at, id`
	return r.list(query, invoiceID)
}

// ListByClient returns a client's submissions across invoices, newest first.
func (r *PaymentRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments
		WHERE submitted_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, clientID, limit, offset)
}

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var proofURL, notes, approvedBy *string
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.AmountPaid, &p.PaymentDate, &p.Method, &p.Reference, &proofURL,
			&p.Status, &notes, &approvedBy, &p.ApprovedAt, &p.SubmittedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.ProofURL = derefStr(proofURL)
		p.ApprovalNotes = derefStr(notes)
		p.ApprovedBy = derefStr(approvedBy)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumApprovedByInvoice returns the approved total of the ledger. COALESCE so
// an empty ledger yields zero, not NULL.
func (r *PaymentRepo) SumApprovedByInvoice(invoiceID string) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments WHERE invoice_id = $1 AND status = 'approved'`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum approved payments: %w", err)
	}
	return sum, nil
}

// PendingAmountsByInvoice returns the amounts of submissions still awaiting
// a decision.
func (r *PaymentRepo) PendingAmountsByInvoice(invoiceID string) ([]decimal.Decimal, error) {
	const query = `
		SELECT amount_paid FROM payments
		WHERE invoice_id = $1 AND status = 'pending' ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list pending payment amounts: %w", err)
	}
	defer rows.Close()
	var amounts []decimal.Decimal
	for rows.Next() {
		var a decimal.Decimal
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan pending amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	return amounts, rows.Err()
}

// UpdateDecision persists an approve/reject outcome.
func (r *PaymentRepo) UpdateDecision(payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, approval_notes = $3, approved_by = $4, approved_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Status, nullIfEmpty(payment.ApprovalNotes),
		nullIfEmpty(payment.ApprovedBy), payment.ApprovedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment decision: %w", err)
	}
	return nil
}
