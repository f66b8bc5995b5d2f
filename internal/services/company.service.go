package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/logger"
)

type CompanyService struct {
	companies CompanyRepository
	users     UserRepository
	tx        Transactor
}

func NewCompanyService(companies CompanyRepository, users UserRepository, tx Transactor) *CompanyService {
	return &CompanyService{
		companies: companies,
		users:     users,
		tx:        tx,
	}
}

// Create registers a company owned by the requester and promotes a plain
// user to owner. A user owns at most one company; admins keep their role.
func (s *CompanyService) Create(ctx context.Context, requester model.Requester, req model.CompanyCreateRequest) (*model.Company, error) {
	plan, err := s.companies.FindPlan(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanUnavailable
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	if !plan.IsActive {
		return nil, ErrPlanUnavailable
	}

	var company *model.Company
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.companies.FindByOwner(ctx, requester.ID)
		if err == nil {
			return ErrAlreadyOwner
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("find company: %w", err)
		}

		company, err = s.companies.Create(ctx, &model.Company{
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			NationalID: req.NationalID,
			Address:    req.Address,
			Owner:      requester.ID,
			PlanID:     plan.ID,
			Settings:   req.Settings,
		})
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrAlreadyOwner
		}
		if err != nil {
			return fmt.Errorf("create company: %w", err)
		}

		if requester.Is(model.RoleUser) {
			if err := s.users.UpdateRole(ctx, requester.ID, model.RoleOwner); err != nil {
				return notFound(err, "promote owner")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("[company] created", "company_id", company.ID, "owner", requester.ID, "plan_id", plan.ID)
	return company, nil
}
