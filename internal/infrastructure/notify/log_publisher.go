// Package notify holds the notification sink adapters.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kmwaura/malipo-api/internal/application/ports"
)

// Compile-time check that LogPublisher implements EventPublisher.
var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher writes domain events to the structured log. It stands in for
// a real push/webhook channel; consumers tail the log stream.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher builds the sink.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish emits the event as one structured log line. Never returns an
// error: event delivery is best-effort and must not block a transition.
func (p *LogPublisher) Publish(ctx context.Context, e ports.Event) {
	ev := p.logger.Info().
		Str("event", e.Type).
		Str("company_id", e.CompanyID)
	if e.InvoiceID != "" {
		ev = ev.Str("invoice_id", e.InvoiceID)
	}
	if e.PaymentID != "" {
		ev = ev.Str("payment_id", e.PaymentID)
	}
	if e.ClientID != "" {
		ev = ev.Str("client_id", e.ClientID)
	}
	if e.ActorID != "" {
		ev = ev.Str("actor_id", e.ActorID)
	}
	for k, v := range e.Payload {
		ev = ev.Str(k, v)
	}
	ev.Msg("domain event")
}
