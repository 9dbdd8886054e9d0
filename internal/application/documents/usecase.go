// Package documents holds the client document submission and review flow.
package documents

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// DocumentUseCase handles client document uploads, advisory AI classification
// and the admin review decision. Storage upload is mandatory; classification
// is best-effort and its failure never fails a submission.
type DocumentUseCase struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	storage    ports.ObjectStorage
	classifier ports.DocumentClassifier
	events     ports.EventPublisher
	logger     zerolog.Logger
}

// NewDocumentUseCase builds the use case. classifier may be nil when no AI
// provider is configured; submissions then skip the suggestion step.
func NewDocumentUseCase(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	storage ports.ObjectStorage,
	classifier ports.DocumentClassifier,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		docRepo:    docRepo,
		clientRepo: clientRepo,
		storage:    storage,
		classifier: classifier,
		events:     events,
		logger:     logger,
	}
}

// Upload is the incoming file of a submission.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submit stores the file, asks the classifier for an advisory suggestion and
// persists the document as pending_review.
func (uc *DocumentUseCase) Submit(ctx context.Context, companyID, actorID, clientID string, up Upload) (*dto.DocumentResponse, error) {
	if strings.TrimSpace(up.FileName) == "" || len(up.Data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	id := uuid.New().String()
	objectPath := path.Join(companyID, "documents", clientID, id+path.Ext(up.FileName))
	url, err := uc.storage.Upload(ctx, objectPath, up.ContentType, up.Data)
	if err != nil {
		// Storage failure aborts: a document record without a stored file
		// would be unreviewable.
		return nil, fmt.Errorf("%w: store document: %v", domain.ErrDependency, err)
	}

	now := time.Now()
	doc := &entity.ClientDocument{
		ID:          id,
		CompanyID:   companyID,
		ClientID:    clientID,
		FileName:    up.FileName,
		MimeType:    up.ContentType,
		DocumentURL: url,
		Status:      entity.DocumentPendingReview,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if uc.classifier != nil {
		// Timeout of 10s: LLM calls can take several seconds and must not
		// hold a submission hostage.
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		suggestion, cerr := uc.classifier.ClassifyDocument(cctx, up.FileName, up.ContentType, up.Data)
		cancel()
		if cerr != nil {
			uc.logger.Warn().Err(cerr).Str("document_id", id).
				Msg("document classification unavailable, submitting without suggestion")
		} else if suggestion != nil {
			doc.SuggestedCategory = suggestion.Category
			doc.Confidence = suggestion.Confidence
			doc.Reasoning = suggestion.Reasoning
		}
	}

	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventDocumentSubmitted,
		CompanyID: companyID,
		ClientID:  clientID,
		ActorID:   actorID,
		Payload:   map[string]string{"document_id": id, "file_name": up.FileName},
	})
	return toDocumentResponse(doc), nil
}

// Review records the admin decision. Category in the request overrides the
// AI suggestion; without it an approval confirms the suggested category.
func (uc *DocumentUseCase) Review(ctx context.Context, companyID, adminID, docID string, in dto.DocumentReviewRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if doc.Status != entity.DocumentPendingReview {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	if in.Approve {
		doc.Status = entity.DocumentApproved
		doc.ConfirmedCategory = in.Category
		if doc.ConfirmedCategory == "" {
			doc.ConfirmedCategory = doc.SuggestedCategory
		}
	} else {
		if strings.TrimSpace(in.Notes) == "" {
			// A rejection without a reason gives the client nothing to fix.
			return nil, domain.ErrInvalidInput
		}
		doc.Status = entity.DocumentRejected
	}
	doc.ReviewNotes = in.Notes
	doc.ReviewedBy = adminID
	doc.ReviewedAt = &now
	doc.UpdatedAt = now

	if err := uc.docRepo.UpdateReview(ctx, doc); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, ports.Event{
		Type:      ports.EventDocumentReviewed,
		CompanyID: companyID,
		ClientID:  doc.ClientID,
		ActorID:   adminID,
		Payload:   map[string]string{"document_id": doc.ID, "status": doc.Status},
	})
	return toDocumentResponse(doc), nil
}

// Get loads one document with company scoping.
func (uc *DocumentUseCase) Get(ctx context.Context, companyID, docID string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toDocumentResponse(doc), nil
}

// ListByCompany returns the company's documents, optionally filtered by status.
func (uc *DocumentUseCase) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*dto.DocumentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.docRepo.ListByCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

// ListByClient returns one client's documents, company-scoped.
func (uc *DocumentUseCase) ListByClient(ctx context.Context, companyID, clientID string) ([]*dto.DocumentResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.docRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

func toDocumentResponses(list []*entity.ClientDocument) []*dto.DocumentResponse {
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	return out
}

func toDocumentResponse(d *entity.ClientDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:                d.ID,
		ClientID:          d.ClientID,
		FileName:          d.FileName,
		MimeType:          d.MimeType,
		DocumentURL:       d.DocumentURL,
		Status:            d.Status,
		SuggestedCategory: d.SuggestedCategory,
		Confidence:        d.Confidence,
		Reasoning:         d.Reasoning,
		ConfirmedCategory: d.ConfirmedCategory,
		ReviewNotes:       d.ReviewNotes,
		CreatedAt:         d.CreatedAt.Format(time.RFC3339),
	}
}
