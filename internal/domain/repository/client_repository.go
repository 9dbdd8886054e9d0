package repository

import "github.com/kmwaura/malipo-api/internal/domain/entity"

// ClientRepository is the persistence port for Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error)
	ListByAgent(companyID, agentID string) ([]*entity.Client, error)
	Update(client *entity.Client) error
	// SetApprovalStatus records the onboarding decision.
	SetApprovalStatus(id, status string) error
	// Deactivate is the soft delete: is_active=false, history untouched.
	Deactivate(id string) error
}
