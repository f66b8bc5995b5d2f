package repository

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type ApiKeyRepository struct {
	*pg.DB
}

func NewApiKeyRepository(db *pg.DB) *ApiKeyRepository {
	return &ApiKeyRepository{
		db,
	}
}

// FindActiveByKey looks up a key that has not been revoked.
func (r *ApiKeyRepository) FindActiveByKey(ctx context.Context, key string) (*model.ApiKey, error) {
	var entity ApiKeyEntity
	if err := r.Read(ctx).Where(&ApiKeyEntity{Key: key}).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toApiKeyModel(&entity), nil
}

// FindByID includes revoked keys.
func (r *ApiKeyRepository) FindByID(ctx context.Context, id int64) (*model.ApiKey, error) {
	var entity ApiKeyEntity
	if err := r.Read(ctx).Unscoped().First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toApiKeyModel(&entity), nil
}

func (r *ApiKeyRepository) Create(ctx context.Context, key *model.ApiKey) (*model.ApiKey, error) {
	entity := toApiKeyEntity(key)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toApiKeyModel(entity), nil
}

// List returns active keys, optionally restricted to one company when companyID > 0.
func (r *ApiKeyRepository) List(ctx context.Context, companyID int64) ([]*model.ApiKey, error) {
	q := r.Read(ctx).Model(&ApiKeyEntity{})
	if companyID > 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var entities []*ApiKeyEntity
	if err := q.Order("id ASC").Find(&entities).Error; err != nil {
		return nil, mapError(err)
	}
	return toApiKeyModels(entities), nil
}

func (r *ApiKeyRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.Write(ctx).Delete(&ApiKeyEntity{}, id)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApiKeyRepository) Restore(ctx context.Context, id int64) error {
	res := r.Write(ctx).Unscoped().
		Model(&ApiKeyEntity{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
