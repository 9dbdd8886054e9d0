package dto

// CreateClientRequest is the body of POST /api/clients. AgentID is set when
// a field agent submits the onboarding.
type CreateClientRequest struct {
	Name           string `json:"name"`
	ContactName    string `json:"contact_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	AgentID        string `json:"agent_id,omitempty"`
}

// UpdateClientRequest is the body of PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name           string `json:"name"`
	ContactName    string `json:"contact_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
}

// ClientDecisionRequest is the body of client approve/reject endpoints.
type ClientDecisionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ClientResponse is a client in responses.
type ClientResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Name           string `json:"name"`
	ContactName    string `json:"contact_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	IsActive       bool   `json:"is_active"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	AgentID        string `json:"agent_id,omitempty"`
}

// CreateAgentRequest is the body of POST /api/agents.
type CreateAgentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Region string `json:"region,omitempty"`
}

// AgentResponse is a field agent in responses.
type AgentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Region   string `json:"region,omitempty"`
	IsActive bool   `json:"is_active"`
}
