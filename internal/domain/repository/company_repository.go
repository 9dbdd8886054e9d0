package repository

import "github.com/kmwaura/malipo-api/internal/domain/entity"

// CompanyRepository is the persistence port for Company (tenant settings).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
}
