package repository

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type TemplateRepository struct {
	*pg.DB
}

func NewTemplateRepository(db *pg.DB) *TemplateRepository {
	return &TemplateRepository{
		db,
	}
}

func (r *TemplateRepository) FindByID(ctx context.Context, id int64) (*model.Template, error) {
	var entity TemplateEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toTemplateModel(&entity), nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	entity := toTemplateEntity(t)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toTemplateModel(entity), nil
}

func (r *TemplateRepository) UpdateStatus(ctx context.Context, id int64, status model.TemplateStatus) error {
	return r.updateColumn(ctx, id, "status", string(status))
}

func (r *TemplateRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.updateColumn(ctx, id, "is_active", active)
}

func (r *TemplateRepository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	res := r.Write(ctx).Model(&TemplateEntity{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TemplateRepository) FindMessageType(ctx context.Context, id int64) (*model.MessageType, error) {
	var entity MessageTypeEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toMessageTypeModel(&entity), nil
}
