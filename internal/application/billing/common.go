package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
	domainbilling "github.com/kmwaura/malipo-api/internal/domain/billing"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

var decimalZero = decimal.Zero

const dateLayout = "2006-01-02"

// Actor is the authenticated caller, resolved once at the HTTP boundary and
// threaded explicitly into every operation. ActorID is the client or agent
// record id for those roles, empty for admins.
type Actor struct {
	UserID    string
	CompanyID string
	Role      string // admin | client | agent
	ActorID   string
}

// authorizeInvoiceRead: admins and agents see all company invoices; client
// actors only their own.
func authorizeInvoiceRead(actor Actor, inv *entity.Invoice) error {
	if inv.CompanyID != actor.CompanyID {
		return domain.ErrForbidden
	}
	if actor.Role == entity.RoleClient {
		if inv.ClientID == nil || *inv.ClientID != actor.ActorID {
			return domain.ErrForbidden
		}
	}
	return nil
}

// parseDateOr parses a YYYY-MM-DD string, returning def when s is empty.
func parseDateOr(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(dateLayout, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toLineInputs(items []dto.InvoiceItemRequest) []domainbilling.LineInput {
	lines := make([]domainbilling.LineInput, 0, len(items))
	for _, it := range items {
		lines = append(lines, domainbilling.LineInput{
			Description: it.Description,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			VATPercent:  it.VATPercent,
		})
	}
	return lines
}

// toInvoiceResponse maps the entity to the response DTO. items may be nil
// for list views.
func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		ClientID:       deref(inv.ClientID),
		InvoiceNo:      inv.InvoiceNo,
		DateIssued:     inv.DateIssued.Format(dateLayout),
		DueDate:        inv.DueDate.Format(dateLayout),
		Status:         inv.Status,
		PaymentStatus:  inv.PaymentStatus,
		Subtotal:       inv.Subtotal,
		VATTotal:       inv.VATTotal,
		GrandTotal:     inv.GrandTotal,
		TotalPaid:      inv.TotalPaid,
		BalanceDue:     inv.BalanceDue,
		CurrencyLabel:  inv.CurrencyLabel,
		ClientName:     inv.ClientName,
		ClientEmail:    inv.ClientEmail,
		ClientPhone:    inv.ClientPhone,
		BillingAddress: inv.BillingAddress,
		Notes:          inv.Notes,
		Items:          []dto.InvoiceItemResponse{},
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			VATPercent:  it.VATPercent,
			LineTotal: domainbilling.LineTotal(domainbilling.LineInput{
				Qty: it.Qty, UnitPrice: it.UnitPrice, VATPercent: it.VATPercent,
			}),
			SortOrder: it.SortOrder,
		})
	}
	return resp
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.AmountPaid,
		PaymentDate:   p.PaymentDate.Format(dateLayout),
		Method:        p.Method,
		Reference:     p.Reference,
		ProofURL:      p.ProofURL,
		Status:        p.Status,
		ApprovalNotes: p.ApprovalNotes,
		ApprovedBy:    p.ApprovedBy,
		SubmittedBy:   p.SubmittedBy,
	}
	if p.ApprovedAt != nil {
		resp.ApprovedAt = p.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}
