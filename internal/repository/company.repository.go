package repository

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type CompanyRepository struct {
	*pg.DB
}

func NewCompanyRepository(db *pg.DB) *CompanyRepository {
	return &CompanyRepository{
		db,
	}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*model.Company, error) {
	var entity CompanyEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toCompanyModel(&entity), nil
}

func (r *CompanyRepository) FindByOwner(ctx context.Context, owner int64) (*model.Company, error) {
	var entity CompanyEntity
	if err := r.Read(ctx).Where("owner = ?", owner).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toCompanyModel(&entity), nil
}

// Create inserts a company. A second company for the same owner returns ErrAlreadyExists.
func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) (*model.Company, error) {
	entity := toCompanyEntity(company)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toCompanyModel(entity), nil
}

func (r *CompanyRepository) FindPlan(ctx context.Context, id int64) (*model.Plan, error) {
	var entity PlanEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toPlanModel(&entity), nil
}
