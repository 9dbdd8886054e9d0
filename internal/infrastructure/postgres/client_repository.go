package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implements ClientRepository over PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository builds the adapter.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `
	id, company_id, name, contact_name, email, phone, billing_address,
	is_active, approval_status, agent_id, created_at, updated_at`

// Create persists a new client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, company_id, name, contact_name, email, phone, billing_address,
			is_active, approval_status, agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		client.ID, client.CompanyID, client.Name, nullIfEmpty(client.ContactName),
		nullIfEmpty(client.Email), nullIfEmpty(client.Phone), nullIfEmpty(client.BillingAddress),
		client.IsActive, client.ApprovalStatus, client.AgentID,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID loads one client.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients WHERE id = $1`
	var c entity.Client
	var contact, email, phone, address *string
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &contact, &email, &phone, &address,
		&c.IsActive, &c.ApprovalStatus, &c.AgentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	c.ContactName = derefStr(contact)
	c.Email = derefStr(email)
	c.Phone = derefStr(phone)
	c.BillingAddress = derefStr(address)
	return &c, nil
}

// ListByCompany lists the company's clients with pagination.
func (r *ClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListByAgent lists the clients one agent onboarded.
func (r *ClientRepo) ListByAgent(companyID, agentID string) ([]*entity.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients
		WHERE company_id = $1 AND agent_id = $2 ORDER BY created_at DESC`
	return r.list(query, companyID, agentID)
}

func (r *ClientRepo) list(query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		var contact, email, phone, address *string
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &contact, &email, &phone, &address,
			&c.IsActive, &c.ApprovalStatus, &c.AgentID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.ContactName = derefStr(contact)
		c.Email = derefStr(email)
		c.Phone = derefStr(phone)
		c.BillingAddress = derefStr(address)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update rewrites the client record.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, contact_name = $3, email = $4, phone = $5, billing_address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.ContactName), nullIfEmpty(client.Email),
		nullIfEmpty(client.Phone), nullIfEmpty(client.BillingAddress), client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SetApprovalStatus records the onboarding decision.
func (r *ClientRepo) SetApprovalStatus(id, status string) error {
	query := `UPDATE clients SET approval_status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("set client approval status: %w", err)
	}
	return nil
}

// Deactivate is the soft delete: is_active=false, nothing else touched.
func (r *ClientRepo) Deactivate(id string) error {
	query := `UPDATE clients SET is_active = false, updated_at = $2 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("deactivate client: %w", err)
	}
	return nil
}
