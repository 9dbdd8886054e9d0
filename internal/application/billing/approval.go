package billing

import (
	"context"
	"strings"
	"time"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// Approve moves a pending payment to approved.
//
// The payment and its invoice are locked for the duration of the
// transaction: the amount is re-validated against the balance computed from
// currently approved payments (this one excluded — it is still pending), so
// two racing approvals cannot jointly overpay the invoice. On an
// overpayment the transaction rolls back, the payment stays pending for
// manual reconciliation and the amount is never clamped.
func (uc *PaymentUseCase) Approve(ctx context.Context, actor Actor, paymentID string, in dto.PaymentDecisionRequest) (*dto.PaymentResponse, error) {
	var payment *entity.Payment
	var invoiceID, clientID string

	err := uc.ledgerTx.RunLedger(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		p, err := paymentRepo.GetByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status != entity.PaymentPending {
			return domain.ErrPaymentFinalized
		}

		inv, err := invoiceRepo.GetByIDForUpdate(p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}

		approved, err := paymentRepo.SumApprovedByInvoice(inv.ID)
		if err != nil {
			return err
		}
		balance := inv.GrandTotal.Sub(approved)
		if p.AmountPaid.GreaterThan(balance) {
			return domain.ErrOverpayment
		}

		now := time.Now()
		p.Status = entity.PaymentApproved
		p.ApprovalNotes = in.Notes
		p.ApprovedBy = actor.UserID
		p.ApprovedAt = &now
		p.UpdatedAt = now
		if err := paymentRepo.UpdateDecision(p); err != nil {
			return err
		}
		if err := recomputeAggregates(invoiceRepo, paymentRepo, inv, now); err != nil {
			return err
		}
		payment = p
		invoiceID = inv.ID
		clientID = deref(inv.ClientID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventPaymentApproved,
		CompanyID: actor.CompanyID,
		InvoiceID: invoiceID,
		PaymentID: payment.ID,
		ClientID:  clientID,
		ActorID:   actor.UserID,
		Payload:   map[string]string{"amount": payment.AmountPaid.String()},
	})

	return toPaymentResponse(payment), nil
}

// Reject moves a pending payment to rejected. Notes are mandatory: a
// rejection without a reason is itself rejected. Aggregates are recomputed
// only because the pending set changed (paid_pending_approval may clear);
// total_paid and balance_due are untouched by construction.
func (uc *PaymentUseCase) Reject(ctx context.Context, actor Actor, paymentID string, in dto.PaymentDecisionRequest) (*dto.PaymentResponse, error) {
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrInvalidInput
	}

	var payment *entity.Payment
	var invoiceID, clientID string

	err := uc.ledgerTx.RunLedger(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		p, err := paymentRepo.GetByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status != entity.PaymentPending {
			return domain.ErrPaymentFinalized
		}

		inv, err := invoiceRepo.GetByIDForUpdate(p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}

		now := time.Now()
		p.Status = entity.PaymentRejected
		p.ApprovalNotes = in.Notes
		p.ApprovedBy = actor.UserID
		p.UpdatedAt = now
		if err := paymentRepo.UpdateDecision(p); err != nil {
			return err
		}
		if err := recomputeAggregates(invoiceRepo, paymentRepo, inv, now); err != nil {
			return err
		}
		payment = p
		invoiceID = inv.ID
		clientID = deref(inv.ClientID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventPaymentRejected,
		CompanyID: actor.CompanyID,
		InvoiceID: invoiceID,
		PaymentID: payment.ID,
		ClientID:  clientID,
		ActorID:   actor.UserID,
		Payload:   map[string]string{"notes": in.Notes},
	})

	return toPaymentResponse(payment), nil
}
