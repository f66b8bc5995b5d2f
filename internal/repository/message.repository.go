package repository

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type MessageRepository struct {
	*pg.DB
}

func NewMessageRepository(db *pg.DB) *MessageRepository {
	return &MessageRepository{
		db,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	entity := toMessageEntity(msg)
	if entity.Status == "" {
		entity.Status = string(model.MessageStatusSent)
	}

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}

	return toMessageModel(entity), nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	var entity MessageEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toMessageModel(&entity), nil
}

// UpdateFields writes only the recipient-changeable columns present in u.
func (r *MessageRepository) UpdateFields(ctx context.Context, id int64, u model.MessageUpdate) error {
	fields := make(map[string]any, 2)
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.IsRead != nil {
		fields["is_read"] = *u.IsRead
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.Write(ctx).Model(&MessageEntity{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForRecipient returns a page of the recipient's messages, newest first,
// and the total count matching the filter.
func (r *MessageRepository) ListForRecipient(ctx context.Context, userID int64, f model.InboxFilter) ([]*model.Message, int64, error) {
	q := r.Read(ctx).Model(&MessageEntity{}).Where("to_id = ?", userID)

	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*MessageEntity
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, mapError(err)
	}

	return toMessageModels(entities), total, nil
}
