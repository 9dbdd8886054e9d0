package ports

import "context"

// Domain event types emitted on state transitions. A downstream consumer
// turns these into toasts/push notifications; delivery is best-effort and
// never required for correctness of persisted state.
const (
	EventInvoiceCreated    = "invoice.created"
	EventInvoiceUpdated    = "invoice.updated"
	EventPaymentSubmitted  = "payment.submitted"
	EventPaymentApproved   = "payment.approved"
	EventPaymentRejected   = "payment.rejected"
	EventDocumentSubmitted = "document.submitted"
	EventDocumentReviewed  = "document.reviewed"
	EventClientApproved    = "client.approved"
	EventClientRejected    = "client.rejected"
)

// Event is a logical domain event. IDs are set where they apply.
type Event struct {
	Type      string
	CompanyID string
	InvoiceID string
	PaymentID string
	ClientID  string
	ActorID   string // user who caused the transition
	Payload   map[string]string
}

// EventPublisher is the outbound port for the notification sink. Publish
// must not block state transitions: implementations swallow and log their
// own failures.
type EventPublisher interface {
	Publish(ctx context.Context, e Event)
}
