package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.FieldAgentRepository = (*FieldAgentRepo)(nil)

// FieldAgentRepo implements FieldAgentRepository over PostgreSQL.
type FieldAgentRepo struct {
	pool *pgxpool.Pool
}

// NewFieldAgentRepository builds the adapter.
func NewFieldAgentRepository(pool *pgxpool.Pool) *FieldAgentRepo {
	return &FieldAgentRepo{pool: pool}
}

// Create persists a new field agent.
func (r *FieldAgentRepo) Create(agent *entity.FieldAgent) error {
	query := `
		INSERT INTO field_agents (id, company_id, name, email, phone, region, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		agent.ID, agent.CompanyID, agent.Name, nullIfEmpty(agent.Email),
		nullIfEmpty(agent.Phone), nullIfEmpty(agent.Region), agent.IsActive,
		agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert field agent: %w", err)
	}
	return nil
}

// GetByID loads one agent.
func (r *FieldAgentRepo) GetByID(id string) (*entity.FieldAgent, error) {
	query := `
		SELECT id, company_id, name, email, phone, region, is_active, created_at, updated_at
		FROM field_agents WHERE id = $1`
	var a entity.FieldAgent
	var email, phone, region *string
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.Name, &email, &phone, &region, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get field agent: %w", err)
	}
	a.Email = derefStr(email)
	a.Phone = derefStr(phone)
	a.Region = derefStr(region)
	return &a, nil
}

// ListByCompany lists the company's agents with pagination.
func (r *FieldAgentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.FieldAgent, error) {
	query := `
		SELECT id, company_id, name, email, phone, region, is_active, created_at, updated_at
		FROM field_agents WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list field agents: %w", err)
	}
	defer rows.Close()
	var list []*entity.FieldAgent
	for rows.Next() {
		var a entity.FieldAgent
		var email, phone, region *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &email, &phone, &region, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan field agent: %w", err)
		}
		a.Email = derefStr(email)
		a.Phone = derefStr(phone)
		a.Region = derefStr(region)
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update rewrites the agent record.
func (r *FieldAgentRepo) Update(agent *entity.FieldAgent) error {
	query := `
		UPDATE field_agents
		SET name = $2, email = $3, phone = $4, region = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		agent.ID, agent.Name, nullIfEmpty(agent.Email), nullIfEmpty(agent.Phone),
		nullIfEmpty(agent.Region), agent.IsActive, agent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update field agent: %w", err)
	}
	return nil
}
