package companies

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// CompanyUseCase manages tenants. Registration is open so a new company can
// onboard itself before its first admin user exists.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registers a tenant. The KRA PIN is unique across the system.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.TaxPIN) == "" {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToUpper(strings.TrimSpace(in.CurrencyLabel))
	if currency == "" {
		currency = "KES"
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		TaxPIN:        strings.ToUpper(strings.TrimSpace(in.TaxPIN)),
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		CurrencyLabel: currency,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID returns one tenant.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update edits tenant contact details and the invoice currency label. The
// KRA PIN is immutable once registered.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Name = strings.TrimSpace(in.Name)
	company.Address = in.Address
	company.Phone = in.Phone
	company.Email = in.Email
	if c := strings.ToUpper(strings.TrimSpace(in.CurrencyLabel)); c != "" {
		company.CurrencyLabel = c
	}
	company.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List pages through registered tenants.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	companies, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{
		Items:  make([]dto.CompanyResponse, 0, len(companies)),
		Limit:  limit,
		Offset: offset,
	}
	for _, company := range companies {
		out.Items = append(out.Items, *toCompanyResponse(company))
	}
	return out, nil
}

func toCompanyResponse(company *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:            company.ID,
		Name:          company.Name,
		TaxPIN:        company.TaxPIN,
		Address:       company.Address,
		Phone:         company.Phone,
		Email:         company.Email,
		CurrencyLabel: company.CurrencyLabel,
		Status:        company.Status,
		CreatedAt:     company.CreatedAt,
		UpdatedAt:     company.UpdatedAt,
	}
}
