// Package clients holds the client and field-agent onboarding use cases.
package clients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// ClientUseCase covers client onboarding and management: create (by admin
// or field agent), update, admin approval decisions and soft deactivation.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
	agentRepo  repository.FieldAgentRepository
	events     ports.EventPublisher
}

// NewClientUseCase builds the use case.
func NewClientUseCase(clientRepo repository.ClientRepository, agentRepo repository.FieldAgentRepository, events ports.EventPublisher) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, agentRepo: agentRepo, events: events}
}

// Create registers a client. Agent submissions start pending approval;
// admin-created clients are approved immediately.
func (uc *ClientUseCase) Create(ctx context.Context, companyID, actorRole string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	var agentID *string
	if in.AgentID != "" {
		agent, err := uc.agentRepo.GetByID(in.AgentID)
		if err != nil {
			return nil, err
		}
		if agent == nil || agent.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		agentID = &agent.ID
	}

	approval := entity.ClientApprovalApproved
	if actorRole == entity.RoleAgent {
		approval = entity.ClientApprovalPending
	}

	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		ContactName:    in.ContactName,
		Email:          in.Email,
		Phone:          in.Phone,
		BillingAddress: in.BillingAddress,
		IsActive:       true,
		ApprovalStatus: &approval,
		AgentID:        agentID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get loads one client.
func (uc *ClientUseCase) Get(ctx context.Context, companyID, id string) (*dto.ClientResponse, error) {
	client, err := uc.loadOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List returns the company's clients.
func (uc *ClientUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.clientRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update edits the client record. Historical invoices keep their snapshot.
func (uc *ClientUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.loadOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	client.Name = in.Name
	client.ContactName = in.ContactName
	client.Email = in.Email
	client.Phone = in.Phone
	client.BillingAddress = in.BillingAddress
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Approve accepts an onboarding. Only pending clients can be decided.
func (uc *ClientUseCase) Approve(ctx context.Context, companyID, adminID, id string) error {
	return uc.decide(ctx, companyID, adminID, id, entity.ClientApprovalApproved, ports.EventClientApproved)
}

// Reject declines an onboarding. Only pending clients can be decided.
func (uc *ClientUseCase) Reject(ctx context.Context, companyID, adminID, id string) error {
	return uc.decide(ctx, companyID, adminID, id, entity.ClientApprovalRejected, ports.EventClientRejected)
}

func (uc *ClientUseCase) decide(ctx context.Context, companyID, adminID, id, status, eventType string) error {
	client, err := uc.loadOwned(companyID, id)
	if err != nil {
		return err
	}
	if client.ApprovalStatus == nil || *client.ApprovalStatus != entity.ClientApprovalPending {
		return domain.ErrConflict
	}
	if err := uc.clientRepo.SetApprovalStatus(id, status); err != nil {
		return err
	}
	uc.events.Publish(ctx, ports.Event{
		Type:      eventType,
		CompanyID: companyID,
		ClientID:  id,
		ActorID:   adminID,
	})
	return nil
}

// Deactivate is the soft delete: the client stops being billable but all
// invoice and payment history stays.
func (uc *ClientUseCase) Deactivate(ctx context.Context, companyID, id string) error {
	if _, err := uc.loadOwned(companyID, id); err != nil {
		return err
	}
	return uc.clientRepo.Deactivate(id)
}

// CreateAgent registers a field agent for the company.
func (uc *ClientUseCase) CreateAgent(ctx context.Context, companyID string, in dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	agent := &entity.FieldAgent{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Region:    in.Region,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.agentRepo.Create(agent); err != nil {
		return nil, err
	}
	return &dto.AgentResponse{
		ID: agent.ID, Name: agent.Name, Email: agent.Email, Phone: agent.Phone,
		Region: agent.Region, IsActive: agent.IsActive,
	}, nil
}

// ListAgents returns the company's field agents.
func (uc *ClientUseCase) ListAgents(ctx context.Context, companyID string, limit, offset int) ([]*dto.AgentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.agentRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AgentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, &dto.AgentResponse{
			ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone,
			Region: a.Region, IsActive: a.IsActive,
		})
	}
	return out, nil
}

func (uc *ClientUseCase) loadOwned(companyID, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	resp := &dto.ClientResponse{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		ContactName:    c.ContactName,
		Email:          c.Email,
		Phone:          c.Phone,
		BillingAddress: c.BillingAddress,
		IsActive:       c.IsActive,
	}
	if c.ApprovalStatus != nil {
		resp.ApprovalStatus = *c.ApprovalStatus
	}
	if c.AgentID != nil {
		resp.AgentID = *c.AgentID
	}
	return resp
}
