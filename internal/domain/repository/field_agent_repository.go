package repository

import "github.com/kmwaura/malipo-api/internal/domain/entity"

// FieldAgentRepository is the persistence port for FieldAgent.
type FieldAgentRepository interface {
	Create(agent *entity.FieldAgent) error
	GetByID(id string) (*entity.FieldAgent, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.FieldAgent, error)
	Update(agent *entity.FieldAgent) error
}
