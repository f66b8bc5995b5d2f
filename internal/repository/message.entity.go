package repository

import (
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"gorm.io/datatypes"
)

type MessageEntity struct {
	pg.Model
	Subject  string                      `gorm:"column:subject;not null"`
	Text     string                      `gorm:"column:message_text;not null"`
	FromID   int64                       `gorm:"column:from_id;not null;index"`
	ToID     int64                       `gorm:"column:to_id;not null;index"`
	Status   string                      `gorm:"column:status;not null;default:sent"`
	Platform datatypes.JSONSlice[string] `gorm:"column:platform;not null"`
	IsRead   bool                        `gorm:"column:is_read;not null;default:false"`
}

func (MessageEntity) TableName() string {
	return "messages"
}

func toMessageEntity(m *model.Message) *MessageEntity {
	if m == nil {
		return nil
	}
	platform := make(datatypes.JSONSlice[string], len(m.Platform))
	for i, p := range m.Platform {
		platform[i] = string(p)
	}
	e := &MessageEntity{
		Subject:  m.Subject,
		Text:     m.Text,
		FromID:   m.From,
		ToID:     m.To,
		Status:   string(m.Status),
		Platform: platform,
		IsRead:   m.IsRead,
	}
	e.ID = m.ID
	return e
}

func toMessageModel(e *MessageEntity) *model.Message {
	if e == nil {
		return nil
	}
	platform := make([]model.Platform, len(e.Platform))
	for i, p := range e.Platform {
		platform[i] = model.Platform(p)
	}
	return &model.Message{
		ID:        e.ID,
		Subject:   e.Subject,
		Text:      e.Text,
		From:      e.FromID,
		To:        e.ToID,
		Status:    model.MessageStatus(e.Status),
		Platform:  platform,
		IsRead:    e.IsRead,
		CreatedAt: e.CreatedAt,
	}
}

func toMessageModels(entities []*MessageEntity) []*model.Message {
	if entities == nil {
		return nil
	}
	models := make([]*model.Message, len(entities))
	for i, e := range entities {
		models[i] = toMessageModel(e)
	}
	return models
}
