package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/pkg/logger"
)

const apiKeyBytes = 32

// Authority maps api keys to companies and manages their lifecycle.
type Authority struct {
	keys      ApiKeyRepository
	companies CompanyRepository
}

func NewAuthority(keys ApiKeyRepository, companies CompanyRepository) *Authority {
	return &Authority{
		keys:      keys,
		companies: companies,
	}
}

// Resolve returns the company owning an active key. Unknown, revoked and
// orphaned keys all fail with ErrUnauthorized.
func (a *Authority) Resolve(ctx context.Context, presented string) (*model.Company, error) {
	if presented == "" {
		return nil, ErrUnauthorized
	}

	key, err := a.keys.FindActiveByKey(ctx, presented)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find api key: %w", err)
	}

	company, err := a.companies.FindByID(ctx, key.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("[authority] api key without company", "api_key_id", key.ID, "company_id", key.CompanyID)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return company, nil
}

// Issue creates a key for the requester's company. Only owners may issue.
func (a *Authority) Issue(ctx context.Context, requester model.Requester, req model.ApiKeyCreateRequest) (*model.ApiKey, error) {
	if !requester.Is(model.RoleOwner) {
		return nil, ErrForbidden
	}
	company, err := a.companies.FindByOwner(ctx, requester.ID)
	if err != nil {
		return nil, notFound(err, "find company")
	}

	secret, err := newSecret()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	key, err := a.keys.Create(ctx, &model.ApiKey{
		Key:       secret,
		Title:     req.Title,
		CompanyID: company.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}

	logger.Info("[authority] api key issued", "api_key_id", key.ID, "company_id", company.ID, "user_id", requester.ID)
	return key, nil
}

func (a *Authority) List(ctx context.Context, requester model.Requester) ([]*model.ApiKey, error) {
	switch requester.Role {
	case model.RoleAdmin:
		return a.keys.List(ctx, 0)
	case model.RoleOwner:
		company, err := a.companies.FindByOwner(ctx, requester.ID)
		if err != nil {
			return nil, notFound(err, "find company")
		}
		return a.keys.List(ctx, company.ID)
	default:
		return nil, ErrForbidden
	}
}

// Revoke soft deletes a key of the requester's company.
func (a *Authority) Revoke(ctx context.Context, requester model.Requester, id int64) error {
	if !requester.Is(model.RoleOwner) {
		return ErrForbidden
	}
	key, err := a.ownedKey(ctx, requester, id)
	if err != nil {
		return err
	}
	if key.DeletedAt != nil {
		return ErrNotFound
	}
	if err := a.keys.SoftDelete(ctx, id); err != nil {
		return notFound(err, "revoke api key")
	}
	logger.Info("[authority] api key revoked", "api_key_id", id, "user_id", requester.ID)
	return nil
}

// Restore brings a revoked key back. Admin only.
func (a *Authority) Restore(ctx context.Context, requester model.Requester, id int64) error {
	if !requester.Is(model.RoleAdmin) {
		return ErrForbidden
	}
	if err := a.keys.Restore(ctx, id); err != nil {
		return notFound(err, "restore api key")
	}
	logger.Info("[authority] api key restored", "api_key_id", id, "user_id", requester.ID)
	return nil
}

// ownedKey hides keys of other companies behind ErrNotFound.
func (a *Authority) ownedKey(ctx context.Context, requester model.Requester, id int64) (*model.ApiKey, error) {
	key, err := a.keys.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find api key")
	}
	company, err := a.companies.FindByOwner(ctx, requester.ID)
	if err != nil {
		return nil, notFound(err, "find company")
	}
	if key.CompanyID != company.ID {
		return nil, ErrNotFound
	}
	return key, nil
}

func newSecret() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
