package entity

import "time"

// Document review states.
const (
	DocumentPendingReview = "pending_review"
	DocumentApproved      = "approved"
	DocumentRejected      = "rejected"
)

// ClientDocument is a file submitted by a client (registration certificate,
// KRA PIN, contract...). The AI classification is advisory metadata: the
// suggested category is never applied without an admin confirming it.
type ClientDocument struct {
	ID        string
	CompanyID string
	ClientID  string
	FileName  string
	MimeType  string
	// DocumentURL is the stored object reference; the core never keeps bytes.
	DocumentURL string
	Status      string // pending_review | approved | rejected

	// Advisory classification from the AI service. Confidence is 0-100;
	// zero values mean classification was unavailable at submission.
	SuggestedCategory string
	Confidence        int
	Reasoning         string

	// Admin review outcome.
	ConfirmedCategory string
	ReviewNotes       string
	ReviewedBy        string
	ReviewedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
