package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	domainbilling "github.com/kmwaura/malipo-api/internal/domain/billing"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// Update replaces the entire item set and recomputes totals. Approved
// payments are left intact: balance_due is re-derived against the new grand
// total inside the same transaction, and if the edit drops the total below
// money already approved the invoice surfaces payment_status "overpaid"
// instead of silently clamping.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	lines := toLineInputs(in.Items)
	totals, err := domainbilling.ComputeTotals(lines)
	if err != nil {
		return nil, err
	}

	var updated *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.ledgerTx.RunLedger(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}

		now := time.Now()
		dueDate, err := parseDateOr(in.DueDate, inv.DueDate)
		if err != nil {
			return domain.ErrInvalidInput
		}

		items = make([]*entity.InvoiceItem, 0, len(in.Items))
		for i, it := range in.Items {
			items = append(items, &entity.InvoiceItem{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				Description: it.Description,
				Qty:         it.Qty,
				UnitPrice:   it.UnitPrice,
				VATPercent:  it.VATPercent,
				SortOrder:   i,
			})
		}
		if err := invoiceRepo.ReplaceItems(inv.ID, items); err != nil {
			return err
		}

		inv.Subtotal = totals.Subtotal
		inv.VATTotal = totals.VATTotal
		inv.GrandTotal = totals.GrandTotal
		inv.DueDate = dueDate
		inv.Notes = in.Notes
		inv.UpdatedAt = now
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}

		if err := recomputeAggregates(invoiceRepo, paymentRepo, inv, now); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventInvoiceUpdated,
		CompanyID: companyID,
		InvoiceID: updated.ID,
		ClientID:  deref(updated.ClientID),
		ActorID:   userID,
		Payload:   map[string]string{"invoice_no": updated.InvoiceNo, "payment_status": updated.PaymentStatus},
	})

	return toInvoiceResponse(updated, items), nil
}

// Delete removes an invoice and its items for good. Reserved for erroneous
// or test invoices; real client history is kept by deactivating the client
// instead.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.invoiceRepo.Delete(id)
}
