package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements DocumentRepository over PostgreSQL.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository builds the adapter.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

const documentColumns = `
	id, company_id, client_id, file_name, mime_type, document_url, status,
	suggested_category, confidence, reasoning,
	confirmed_category, review_notes, reviewed_by, reviewed_at,
	created_at, updated_at`

// Create persists a submitted document with its advisory classification.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.ClientDocument) error {
	query := `
		INSERT INTO client_documents (id, company_id, client_id, file_name, mime_type, document_url, status,
			suggested_category, confidence, reasoning,
			confirmed_category, review_notes, reviewed_by, reviewed_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.ClientID, doc.FileName, doc.MimeType, doc.DocumentURL, doc.Status,
		nullIfEmpty(doc.SuggestedCategory), doc.Confidence, nullIfEmpty(doc.Reasoning),
		nullIfEmpty(doc.ConfirmedCategory), nullIfEmpty(doc.ReviewNotes), nullIfEmpty(doc.ReviewedBy), doc.ReviewedAt,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client document: %w", err)
	}
	return nil
}

// GetByID loads one document.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.ClientDocument, error) {
	query := `SELECT` + documentColumns + ` FROM client_documents WHERE id = $1`
	var d entity.ClientDocument
	var suggested, reasoning, confirmed, notes, reviewedBy *string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.ClientID, &d.FileName, &d.MimeType, &d.DocumentURL, &d.Status,
		&suggested, &d.Confidence, &reasoning,
		&confirmed, &notes, &reviewedBy, &d.ReviewedAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client document: %w", err)
	}
	d.SuggestedCategory = derefStr(suggested)
	d.Reasoning = derefStr(reasoning)
	d.ConfirmedCategory = derefStr(confirmed)
	d.ReviewNotes = derefStr(notes)
	d.ReviewedBy = derefStr(reviewedBy)
	return &d, nil
}

// ListByCompany lists the company's documents, optionally filtered by status.
func (r *DocumentRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ClientDocument, error) {
	query := `SELECT` + documentColumns + ` FROM client_documents WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

// ListByClient lists one client's documents, newest first.
func (r *DocumentRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.ClientDocument, error) {
	query := `SELECT` + documentColumns + ` FROM client_documents
		WHERE client_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, clientID)
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ClientDocument, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list client documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientDocument
	for rows.Next() {
		var d entity.ClientDocument
		var suggested, reasoning, confirmed, notes, reviewedBy *string
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.ClientID, &d.FileName, &d.MimeType, &d.DocumentURL, &d.Status,
			&suggested, &d.Confidence, &reasoning,
			&confirmed, &notes, &reviewedBy, &d.ReviewedAt,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client document: %w", err)
		}
		d.SuggestedCategory = derefStr(suggested)
		d.Reasoning = derefStr(reasoning)
		d.ConfirmedCategory = derefStr(confirmed)
		d.ReviewNotes = derefStr(notes)
		d.ReviewedBy = derefStr(reviewedBy)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateReview persists the admin decision.
func (r *DocumentRepo) UpdateReview(ctx context.Context, doc *entity.ClientDocument) error {
	query := `
		UPDATE client_documents
		SET status = $2, confirmed_category = $3, review_notes = $4, reviewed_by = $5, reviewed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.Status, nullIfEmpty(doc.ConfirmedCategory), nullIfEmpty(doc.ReviewNotes),
		nullIfEmpty(doc.ReviewedBy), doc.ReviewedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document review: %w", err)
	}
	return nil
}
