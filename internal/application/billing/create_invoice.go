package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	domainbilling "github.com/kmwaura/malipo-api/internal/domain/billing"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// InvoiceUseCase owns the invoice lifecycle: creation with generated
// numbers, item-set replacement, status derivation and hard delete.
type InvoiceUseCase struct {
	invoicingTx InvoicingTxRunner
	ledgerTx    LedgerTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	events      ports.EventPublisher
	cfg         Config
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	invoicingTx InvoicingTxRunner,
	ledgerTx LedgerTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	events ports.EventPublisher,
	cfg Config,
) *InvoiceUseCase {
	if cfg.DefaultPrefix == "" {
		cfg.DefaultPrefix = "INV"
	}
	if cfg.DueDays <= 0 {
		cfg.DueDays = 30
	}
	return &InvoiceUseCase{
		invoicingTx: invoicingTx,
		ledgerTx:    ledgerTx,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		events:      events,
		cfg:         cfg,
	}
}

// Create validates the item set, resolves the client snapshot, claims the
// next invoice number and persists header plus items as one atomic unit.
// Number generation runs inside the same transaction, so an item insert
// failure rolls back both the invoice and the number claim.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	lines := toLineInputs(in.Items)
	totals, err := domainbilling.ComputeTotals(lines)
	if err != nil {
		return nil, err
	}

	snapshot, clientID, err := uc.resolveSnapshot(companyID, in.Client)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dueDate, err := parseDateOr(in.DueDate, now.AddDate(0, 0, uc.cfg.DueDays))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	prefix := strings.TrimSpace(in.Prefix)
	if prefix == "" {
		prefix = uc.cfg.DefaultPrefix
	}

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ClientID:       clientID,
		Prefix:         prefix,
		DateIssued:     now,
		DueDate:        dueDate,
		Status:         entity.InvoiceStatusUnpaid,
		PaymentStatus:  entity.PaymentStatusNotStarted,
		Subtotal:       totals.Subtotal,
		VATTotal:       totals.VATTotal,
		GrandTotal:     totals.GrandTotal,
		TotalPaid:      decimalZero,
		BalanceDue:     totals.GrandTotal,
		CurrencyLabel:  uc.cfg.CurrencyLabel,
		ClientName:     snapshot.Name,
		ClientEmail:    snapshot.Email,
		ClientPhone:    snapshot.Phone,
		BillingAddress: snapshot.BillingAddress,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Description: strings.TrimSpace(it.Description),
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			VATPercent:  it.VATPercent,
			SortOrder:   i,
		})
	}

	err = uc.invoicingTx.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		seqRepo repository.InvoiceSequenceRepository,
	) error {
		number, err := seqRepo.NextNumber(companyID, prefix, now.Year())
		if err != nil {
			return fmt.Errorf("claim invoice number: %w", err)
		}
		inv.InvoiceNo = fmt.Sprintf("%s-%d-%04d", prefix, now.Year(), number)
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventInvoiceCreated,
		CompanyID: companyID,
		InvoiceID: inv.ID,
		ClientID:  deref(clientID),
		ActorID:   userID,
		Payload:   map[string]string{"invoice_no": inv.InvoiceNo, "grand_total": inv.GrandTotal.String()},
	})

	return toInvoiceResponse(inv, items), nil
}

// Get returns the full invoice with items. Client actors only see their
// own invoices.
func (uc *InvoiceUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := authorizeInvoiceRead(actor, inv); err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// List returns the company's invoices; client actors are pinned to their
// own client id regardless of the requested filter.
func (uc *InvoiceUseCase) List(ctx context.Context, actor Actor, f repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if actor.Role == entity.RoleClient {
		f.ClientID = actor.ActorID
	}
	list, err := uc.invoiceRepo.ListByCompany(actor.CompanyID, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// resolveSnapshot fills the invoice's client snapshot. With a client id the
// snapshot comes from the client record (which must belong to the company
// and be active); otherwise the free-text snapshot must at least name the
// client.
func (uc *InvoiceUseCase) resolveSnapshot(companyID string, in dto.ClientSnapshotRequest) (dto.ClientSnapshotRequest, *string, error) {
	if in.ClientID == "" {
		if strings.TrimSpace(in.Name) == "" {
			return in, nil, domain.ErrInvalidInput
		}
		return in, nil, nil
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return in, nil, err
	}
	if client == nil {
		return in, nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return in, nil, domain.ErrForbidden
	}
	if !client.IsActive {
		return in, nil, domain.ErrConflict
	}
	snapshot := dto.ClientSnapshotRequest{
		ClientID:       client.ID,
		Name:           client.Name,
		Email:          client.Email,
		Phone:          client.Phone,
		BillingAddress: client.BillingAddress,
	}
	// Explicit snapshot fields win over the client record.
	if strings.TrimSpace(in.Name) != "" {
		snapshot.Name = in.Name
	}
	if in.Email != "" {
		snapshot.Email = in.Email
	}
	if in.Phone != "" {
		snapshot.Phone = in.Phone
	}
	if in.BillingAddress != "" {
		snapshot.BillingAddress = in.BillingAddress
	}
	id := client.ID
	return snapshot, &id, nil
}
