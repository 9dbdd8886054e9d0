package billing_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/kmwaura/malipo-api/internal/application/billing"
	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// memStore is a single in-memory backing store shared by the fake repos, so
// the tx-runner fakes can hand out "transaction-bound" repos that see the
// same data.
type memStore struct {
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem // by invoice id
	payments  map[string]*entity.Payment
	clients   map[string]*entity.Client
	sequences map[string]int64 // company|prefix|year
}

func newMemStore() *memStore {
	return &memStore{
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.InvoiceItem{},
		payments:  map[string]*entity.Payment{},
		clients:   map[string]*entity.Client{},
		sequences: map[string]int64{},
	}
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], &cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.s.items[invoiceID], nil
}

func (r *memInvoiceRepo) ListByCompany(companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if f.ClientID != "" && (inv.ClientID == nil || *inv.ClientID != f.ClientID) {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && inv.PaymentStatus != f.PaymentStatus {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo > out[j].InvoiceNo })
	return out, nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) UpdateAggregates(id string, totalPaid, balanceDue decimal.Decimal, paymentStatus, status string, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.TotalPaid = totalPaid
	inv.BalanceDue = balanceDue
	inv.PaymentStatus = paymentStatus
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *memInvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	r.s.items[invoiceID] = nil
	for _, it := range items {
		cp := *it
		r.s.items[invoiceID] = append(r.s.items[invoiceID], &cp)
	}
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	return nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) GetByIDForUpdate(id string) (*entity.Payment, error) {
	return r.GetByID(id)
}

func (r *memPaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memPaymentRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SubmittedBy == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) SumApprovedByInvoice(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID && p.Status == entity.PaymentApproved {
			sum = sum.Add(p.AmountPaid)
		}
	}
	return sum, nil
}

func (r *memPaymentRepo) PendingAmountsByInvoice(invoiceID string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID && p.Status == entity.PaymentPending {
			out = append(out, p.AmountPaid)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) UpdateDecision(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

func (r *memClientRepo) ListByAgent(companyID, agentID string) ([]*entity.Client, error) {
	return nil, nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) SetApprovalStatus(id, status string) error {
	if c, ok := r.s.clients[id]; ok {
		c.ApprovalStatus = &status
	}
	return nil
}

func (r *memClientRepo) Deactivate(id string) error {
	if c, ok := r.s.clients[id]; ok {
		c.IsActive = false
	}
	return nil
}

type memSequenceRepo struct{ s *memStore }

func (r *memSequenceRepo) NextNumber(companyID, prefix string, year int) (int64, error) {
	key := fmt.Sprintf("%s|%s|%d", companyID, prefix, year)
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

// memTxRunner satisfies both tx-runner ports. The fakes share one store, so
// "transactions" are immediate; the tests exercise the semantics, not the
// isolation.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunInvoicing(ctx context.Context, fn func(repository.InvoiceRepository, repository.InvoiceSequenceRepository) error) error {
	return fn(&memInvoiceRepo{s: t.s}, &memSequenceRepo{s: t.s})
}

func (t *memTxRunner) RunLedger(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	return fn(&memInvoiceRepo{s: t.s}, &memPaymentRepo{s: t.s})
}

type memStorage struct{ fail bool }

func (m *memStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if m.fail {
		return "", fmt.Errorf("bucket unreachable")
	}
	return "https://files.test/" + path, nil
}

type capturedEvents struct{ events []ports.Event }

func (c *capturedEvents) Publish(ctx context.Context, e ports.Event) {
	c.events = append(c.events, e)
}

func (c *capturedEvents) types() []string {
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Type)
	}
	return out
}

// fixture bundles the wired use cases over a fresh store.
type fixture struct {
	store    *memStore
	events   *capturedEvents
	storage  *memStorage
	invoices *appbilling.InvoiceUseCase
	payments *appbilling.PaymentUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	tx := &memTxRunner{s: s}
	ev := &capturedEvents{}
	st := &memStorage{}
	f := &fixture{store: s, events: ev, storage: st}
	f.invoices = appbilling.NewInvoiceUseCase(tx, tx, &memInvoiceRepo{s: s}, &memClientRepo{s: s}, ev, appbilling.Config{
		DefaultPrefix: "INV",
		DueDays:       30,
		CurrencyLabel: "KES",
	})
	f.payments = appbilling.NewPaymentUseCase(tx, &memInvoiceRepo{s: s}, &memPaymentRepo{s: s}, st, ev)
	return f
}

const (
	companyID = "co-1"
	adminID   = "user-admin"
	clientID  = "client-1"
)

func adminActor() appbilling.Actor {
	return appbilling.Actor{UserID: adminID, CompanyID: companyID, Role: entity.RoleAdmin}
}

func clientActor(id string) appbilling.Actor {
	return appbilling.Actor{UserID: "user-" + id, CompanyID: companyID, Role: entity.RoleClient, ActorID: id}
}

func (f *fixture) seedClient(id string) {
	approved := entity.ClientApprovalApproved
	f.store.clients[id] = &entity.Client{
		ID:             id,
		CompanyID:      companyID,
		Name:           "Tumaini Traders",
		Email:          "accounts@tumaini.co.ke",
		Phone:          "+254700111222",
		BillingAddress: "Moi Avenue, Nairobi",
		IsActive:       true,
		ApprovalStatus: &approved,
	}
}

func (f *fixture) createInvoice(t *testing.T, amount, vat string) *dto.InvoiceResponse {
	t.Helper()
	f.seedClient(clientID)
	inv, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Client: dto.ClientSnapshotRequest{ClientID: clientID},
		Items: []dto.InvoiceItemRequest{
			{Description: "Services", Qty: d("1"), UnitPrice: d(amount), VATPercent: d(vat)},
		},
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) submit(t *testing.T, actor appbilling.Actor, invoiceID, amount string) *dto.PaymentResponse {
	t.Helper()
	p, err := f.payments.Submit(context.Background(), actor, invoiceID, dto.SubmitPaymentRequest{
		Amount:    d(amount),
		Method:    entity.MethodMpesa,
		Reference: "QX" + amount,
	}, nil)
	require.NoError(t, err)
	return p
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreateInvoice_NumbersAndTotals(t *testing.T) {
	f := newFixture()
	f.seedClient(clientID)

	first, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Client: dto.ClientSnapshotRequest{ClientID: clientID},
		Items: []dto.InvoiceItemRequest{
			{Description: "Consulting", Qty: d("1"), UnitPrice: d("1000"), VATPercent: d("16")},
			{Description: "Hosting", Qty: d("1"), UnitPrice: d("1000"), VATPercent: d("16")},
		},
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), first.InvoiceNo)
	assert.True(t, d("2000").Equal(first.Subtotal))
	assert.True(t, d("320").Equal(first.VATTotal))
	assert.True(t, d("2320").Equal(first.GrandTotal))
	assert.True(t, first.TotalPaid.IsZero())
	assert.True(t, d("2320").Equal(first.BalanceDue))
	assert.Equal(t, entity.PaymentStatusNotStarted, first.PaymentStatus)
	assert.Equal(t, entity.InvoiceStatusUnpaid, first.Status)
	assert.Equal(t, "KES", first.CurrencyLabel)

	// Snapshot comes from the client record.
	assert.Equal(t, "Tumaini Traders", first.ClientName)
	assert.Equal(t, "accounts@tumaini.co.ke", first.ClientEmail)

	second, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Client: dto.ClientSnapshotRequest{Name: "Walk-in"},
		Items:  []dto.InvoiceItemRequest{{Description: "One-off", Qty: d("1"), UnitPrice: d("50"), VATPercent: d("0")}},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-0002", year), second.InvoiceNo)

	assert.Contains(t, f.events.types(), ports.EventInvoiceCreated)
}

func TestCreateInvoice_FreeTextSnapshotNeedsName(t *testing.T) {
	f := newFixture()

	_, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{Description: "X", Qty: d("1"), UnitPrice: d("10"), VATPercent: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_InactiveClientRejected(t *testing.T) {
	f := newFixture()
	f.seedClient(clientID)
	f.store.clients[clientID].IsActive = false

	_, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Client: dto.ClientSnapshotRequest{ClientID: clientID},
		Items:  []dto.InvoiceItemRequest{{Description: "X", Qty: d("1"), UnitPrice: d("10"), VATPercent: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateInvoice_ForeignClientForbidden(t *testing.T) {
	f := newFixture()
	f.seedClient(clientID)
	f.store.clients[clientID].CompanyID = "someone-else"

	_, err := f.invoices.Create(context.Background(), companyID, adminID, dto.CreateInvoiceRequest{
		Client: dto.ClientSnapshotRequest{ClientID: clientID},
		Items:  []dto.InvoiceItemRequest{{Description: "X", Qty: d("1"), UnitPrice: d("10"), VATPercent: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPaymentFlow_SubmitApproveToFullyPaid(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16") // grand total 2320

	// A pending payment flips the invoice to paid_pending_approval but
	// leaves the money columns untouched.
	p1 := f.submit(t, clientActor(clientID), inv.ID, "1000")
	assert.Equal(t, entity.PaymentPending, p1.Status)

	stored, err := f.invoices.Get(context.Background(), adminActor(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaidPendingApproval, stored.PaymentStatus)
	assert.True(t, stored.TotalPaid.IsZero())
	assert.True(t, d("2320").Equal(stored.BalanceDue))

	// Approval folds the amount into the aggregates.
	approved, err := f.payments.Approve(context.Background(), adminActor(), p1.ID, dto.PaymentDecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, approved.Status)
	assert.NotEmpty(t, approved.ApprovedAt)

	stored, err = f.invoices.Get(context.Background(), adminActor(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, stored.PaymentStatus)
	assert.True(t, d("1000").Equal(stored.TotalPaid))
	assert.True(t, d("1320").Equal(stored.BalanceDue))

	// Settle the remainder.
	p2 := f.submit(t, clientActor(clientID), inv.ID, "1320")
	_, err = f.payments.Approve(context.Background(), adminActor(), p2.ID, dto.PaymentDecisionRequest{})
	require.NoError(t, err)

	stored, err = f.invoices.Get(context.Background(), adminActor(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFullyPaid, stored.PaymentStatus)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
	assert.True(t, stored.BalanceDue.IsZero())

	assert.Contains(t, f.events.types(), ports.EventPaymentSubmitted)
	assert.Contains(t, f.events.types(), ports.EventPaymentApproved)
}

func TestSubmit_OverpaymentRejected(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16") // 2320

	_, err := f.payments.Submit(context.Background(), clientActor(clientID), inv.ID, dto.SubmitPaymentRequest{
		Amount: d("2500"), Method: entity.MethodBankTransfer, Reference: "TRX-1",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrOverpayment)
}

func TestSubmit_OverpaymentAgainstRemainingBalance(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16") // 2320
	p := f.submit(t, clientActor(clientID), inv.ID, "1000")
	_, err := f.payments.Approve(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{})
	require.NoError(t, err)

	// Balance is 1320 now; 1500 overshoots.
	_, err = f.payments.Submit(context.Background(), clientActor(clientID), inv.ID, dto.SubmitPaymentRequest{
		Amount: d("1500"), Method: entity.MethodMpesa, Reference: "QX1500",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrOverpayment)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "100", "0")
	actor := clientActor(clientID)

	_, err := f.payments.Submit(context.Background(), actor, inv.ID, dto.SubmitPaymentRequest{
		Amount: d("0"), Method: entity.MethodCash, Reference: "r",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero amount")

	_, err = f.payments.Submit(context.Background(), actor, inv.ID, dto.SubmitPaymentRequest{
		Amount: d("10"), Method: "cowrie_shells", Reference: "r",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown method")

	_, err = f.payments.Submit(context.Background(), actor, inv.ID, dto.SubmitPaymentRequest{
		Amount: d("10"), Method: entity.MethodCash, Reference: "   ",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "blank reference")
}

func TestSubmit_ProofStorageFailureAborts(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "100", "0")
	f.storage.fail = true

	_, err := f.payments.Submit(context.Background(), clientActor(clientID), inv.ID, dto.SubmitPaymentRequest{
		Amount: d("50"), Method: entity.MethodMpesa, Reference: "QX50",
	}, &appbilling.ProofUpload{FileName: "receipt.jpg", ContentType: "image/jpeg", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Empty(t, f.store.payments, "no ledger entry without the proof")
}

func TestReject_RequiresNotesAndIsTerminal(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16")
	p := f.submit(t, clientActor(clientID), inv.ID, "1000")

	_, err := f.payments.Reject(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rejection without notes")

	rejected, err := f.payments.Reject(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{Notes: "reference not found in statement"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRejected, rejected.Status)

	// Rejected money never reaches the aggregates, and the pending flag clears.
	stored, err := f.invoices.Get(context.Background(), adminActor(), inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalPaid.IsZero())
	assert.Equal(t, entity.PaymentStatusNotStarted, stored.PaymentStatus)

	// Decisions are append-only.
	_, err = f.payments.Approve(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{})
	assert.ErrorIs(t, err, domain.ErrPaymentFinalized)
	_, err = f.payments.Reject(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{Notes: "again"})
	assert.ErrorIs(t, err, domain.ErrPaymentFinalized)
}

func TestApprove_RevalidatesAgainstBalance(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16") // 2320

	// Two racing submissions both pass the advisory check.
	p1 := f.submit(t, clientActor(clientID), inv.ID, "1500")
	p2 := f.submit(t, clientActor(clientID), inv.ID, "1500")

	_, err := f.payments.Approve(context.Background(), adminActor(), p1.ID, dto.PaymentDecisionRequest{})
	require.NoError(t, err)

	// The second approval would overpay; it fails and the payment stays
	// pending for manual reconciliation.
	_, err = f.payments.Approve(context.Background(), adminActor(), p2.ID, dto.PaymentDecisionRequest{})
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	assert.Equal(t, entity.PaymentPending, f.store.payments[p2.ID].Status)

	stored, err := f.invoices.Get(context.Background(), adminActor(), inv.ID)
	require.NoError(t, err)
	assert.True(t, d("1500").Equal(stored.TotalPaid))
}

func TestUpdate_EditBelowApprovedSurfacesOverpaid(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "2000", "16") // 2320
	p := f.submit(t, clientActor(clientID), inv.ID, "1000")
	_, err := f.payments.Approve(context.Background(), adminActor(), p.ID, dto.PaymentDecisionRequest{})
	require.NoError(t, err)

	updated, err := f.invoices.Update(context.Background(), companyID, adminID, inv.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{Description: "Reduced scope", Qty: d("1"), UnitPrice: d("800"), VATPercent: d("0")}},
	})
	require.NoError(t, err)

	assert.True(t, d("800").Equal(updated.GrandTotal))
	assert.Equal(t, entity.PaymentStatusOverpaid, updated.PaymentStatus)
	assert.True(t, updated.BalanceDue.IsZero(), "balance clamps, status tells the truth")
	assert.True(t, d("1000").Equal(updated.TotalPaid), "approved money is never clamped")
}

func TestGet_ClientActorSeesOnlyOwnInvoices(t *testing.T) {
	f := newFixture()
	inv := f.createInvoice(t, "100", "0")

	_, err := f.invoices.Get(context.Background(), clientActor(clientID), inv.ID)
	assert.NoError(t, err)

	_, err = f.invoices.Get(context.Background(), clientActor("client-2"), inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	foreign := adminActor()
	foreign.CompanyID = "other-co"
	_, err = f.invoices.Get(context.Background(), foreign, inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_ClientActorIsPinnedToOwnClientID(t *testing.T) {
	f := newFixture()
	f.createInvoice(t, "100", "0")

	// The filter asks for everything; the role pins it anyway.
	out, err := f.invoices.List(context.Background(), clientActor("client-2"), repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = f.invoices.List(context.Background(), clientActor(clientID), repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
