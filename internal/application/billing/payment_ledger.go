package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	domainbilling "github.com/kmwaura/malipo-api/internal/domain/billing"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// PaymentUseCase owns the payment ledger and the approval state machine.
// Every status change recomputes the owning invoice's aggregates inside the
// same transaction.
type PaymentUseCase struct {
	ledgerTx    LedgerTxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	storage     ports.ObjectStorage
	events      ports.EventPublisher
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	ledgerTx LedgerTxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	storage ports.ObjectStorage,
	events ports.EventPublisher,
) *PaymentUseCase {
	return &PaymentUseCase{
		ledgerTx:    ledgerTx,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		storage:     storage,
		events:      events,
	}
}

// ProofUpload is an optional proof-of-payment attachment.
type ProofUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submit records a pending payment against an invoice.
//
// Validation: amount > 0, known method, non-blank reference, and amount not
// above the balance computed from approved payments. The balance check here
// is advisory (two concurrent submissions can both pass it); approval
// re-validates under the invoice row lock. Submission never touches
// total_paid/balance_due, only the pending set — which may flip
// payment_status to paid_pending_approval.
//
// When proof is attached, a storage failure aborts the submission: the
// caller intended the proof to be part of the record.
func (uc *PaymentUseCase) Submit(ctx context.Context, actor Actor, invoiceID string, in dto.SubmitPaymentRequest, proof *ProofUpload) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Reference) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	paymentDate, err := parseDateOr(in.PaymentDate, now)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	proofURL := ""
	if proof != nil {
		path := fmt.Sprintf("payments/%s/%s-%s", invoiceID, uuid.New().String(), proof.FileName)
		proofURL, err = uc.storage.Upload(ctx, path, proof.ContentType, proof.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: store payment proof: %v", domain.ErrDependency, err)
		}
	}

	payment := &entity.Payment{
		ID:          uuid.New().String(),
		InvoiceID:   invoiceID,
		AmountPaid:  in.Amount,
		PaymentDate: paymentDate,
		Method:      in.Method,
		Reference:   in.Reference,
		ProofURL:    proofURL,
		Status:      entity.PaymentPending,
		SubmittedBy: actor.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.ledgerTx.RunLedger(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := authorizeInvoiceRead(actor, inv); err != nil {
			return err
		}

		approved, err := paymentRepo.SumApprovedByInvoice(invoiceID)
		if err != nil {
			return err
		}
		balance := inv.GrandTotal.Sub(approved)
		if in.Amount.GreaterThan(balance) {
			return domain.ErrOverpayment
		}

		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return recomputeAggregates(invoiceRepo, paymentRepo, inv, now)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventPaymentSubmitted,
		CompanyID: actor.CompanyID,
		InvoiceID: invoiceID,
		PaymentID: payment.ID,
		ClientID:  actor.ActorID,
		ActorID:   actor.UserID,
		Payload:   map[string]string{"amount": in.Amount.String(), "method": in.Method},
	})

	return toPaymentResponse(payment), nil
}

// ListByInvoice returns the invoice's ledger entries, newest first.
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, actor Actor, invoiceID string) ([]*dto.PaymentResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := authorizeInvoiceRead(actor, inv); err != nil {
		return nil, err
	}
	list, err := uc.paymentRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// recomputeAggregates re-derives total_paid, balance_due, payment_status
// and the legacy status flag from the ledger. Must run with the invoice row
// locked, inside the transaction that changed the ledger.
func recomputeAggregates(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	inv *entity.Invoice,
	now time.Time,
) error {
	approved, err := paymentRepo.SumApprovedByInvoice(inv.ID)
	if err != nil {
		return err
	}
	var pending []decimal.Decimal
	if approved.IsZero() {
		// Pending amounts only matter for paid_pending_approval.
		pending, err = paymentRepo.PendingAmountsByInvoice(inv.ID)
		if err != nil {
			return err
		}
	}
	agg := domainbilling.DeriveAggregates(inv.GrandTotal, approved, pending)
	status := domainbilling.DeriveStatus(agg.PaymentStatus, inv.DueDate, now)

	inv.TotalPaid = agg.TotalPaid
	inv.BalanceDue = agg.BalanceDue
	inv.PaymentStatus = agg.PaymentStatus
	inv.Status = status
	return invoiceRepo.UpdateAggregates(inv.ID, agg.TotalPaid, agg.BalanceDue, agg.PaymentStatus, status, now)
}
