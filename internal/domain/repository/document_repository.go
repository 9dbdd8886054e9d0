package repository

import (
	"context"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

// DocumentRepository is the persistence port for client documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.ClientDocument) error
	GetByID(ctx context.Context, id string) (*entity.ClientDocument, error)
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ClientDocument, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.ClientDocument, error)
	// UpdateReview persists the admin decision: status, confirmed category,
	// notes, reviewer and timestamp.
	UpdateReview(ctx context.Context, doc *entity.ClientDocument) error
}
