package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/logger"
)

// TemplateService handles template submission and moderation.
type TemplateService struct {
	templates TemplateRepository
	companies CompanyRepository
}

func NewTemplateService(templates TemplateRepository, companies CompanyRepository) *TemplateService {
	return &TemplateService{
		templates: templates,
		companies: companies,
	}
}

// Submit stores a pending template for the owner's company.
func (s *TemplateService) Submit(ctx context.Context, requester model.Requester, req model.TemplateCreateRequest) (*model.Template, error) {
	if !requester.Is(model.RoleOwner) {
		return nil, ErrForbidden
	}
	company, err := s.companies.FindByOwner(ctx, requester.ID)
	if err != nil {
		return nil, notFound(err, "find company")
	}

	mt, err := s.templates.FindMessageType(ctx, req.MessageTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageTypeUnavailable
		}
		return nil, fmt.Errorf("find message type: %w", err)
	}
	if !mt.IsActive {
		return nil, ErrMessageTypeUnavailable
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tpl, err := s.templates.Create(ctx, &model.Template{
		Title:         req.Title,
		Text:          req.Text,
		CompanyID:     company.ID,
		MessageTypeID: mt.ID,
		Status:        model.TemplateStatusPending,
		IsActive:      active,
	})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	logger.Info("[template] submitted", "template_id", tpl.ID, "company_id", company.ID)
	return tpl, nil
}

// Moderate accepts or rejects a template. Admin only.
func (s *TemplateService) Moderate(ctx context.Context, requester model.Requester, id int64, status model.TemplateStatus) error {
	if !requester.Is(model.RoleAdmin) {
		return ErrForbidden
	}
	if status != model.TemplateStatusAccept && status != model.TemplateStatusReject {
		return ErrUnprocessableFields
	}
	if err := s.templates.UpdateStatus(ctx, id, status); err != nil {
		return notFound(err, "moderate template")
	}
	logger.Info("[template] moderated", "template_id", id, "status", status)
	return nil
}

// SetActive toggles a template of the owner's company.
func (s *TemplateService) SetActive(ctx context.Context, requester model.Requester, id int64, active bool) error {
	if !requester.Is(model.RoleOwner) {
		return ErrForbidden
	}
	tpl, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "find template")
	}
	company, err := s.companies.FindByOwner(ctx, requester.ID)
	if err != nil {
		return notFound(err, "find company")
	}
	if tpl.CompanyID != company.ID {
		return ErrNotFound
	}
	if err := s.templates.SetActive(ctx, id, active); err != nil {
		return notFound(err, "set template active")
	}
	return nil
}
