package entity

import "time"

// Client onboarding approval states. A nil ApprovalStatus means the client
// predates the onboarding flow (or was created directly by an admin).
const (
	ClientApprovalPending  = "pending"
	ClientApprovalApproved = "approved"
	ClientApprovalRejected = "rejected"
)

// Client is a billed customer of the company. Deactivation is a soft delete
// (IsActive=false); invoice history is never removed with the client.
type Client struct {
	ID             string
	CompanyID      string
	Name           string
	ContactName    string
	Email          string
	Phone          string
	BillingAddress string
	IsActive       bool
	ApprovalStatus *string // pending | approved | rejected | nil
	AgentID        *string // field agent who onboarded the client, if any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
