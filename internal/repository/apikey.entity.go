package repository

import (
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type ApiKeyEntity struct {
	pg.Model
	Key       string `gorm:"column:key;not null;uniqueIndex"`
	Title     string `gorm:"column:title;not null"`
	CompanyID int64  `gorm:"column:company_id;not null;index"`
}

func (ApiKeyEntity) TableName() string {
	return "api_keys"
}

func toApiKeyEntity(m *model.ApiKey) *ApiKeyEntity {
	if m == nil {
		return nil
	}
	e := &ApiKeyEntity{
		Key:       m.Key,
		Title:     m.Title,
		CompanyID: m.CompanyID,
	}
	e.ID = m.ID
	return e
}

func toApiKeyModel(e *ApiKeyEntity) *model.ApiKey {
	if e == nil {
		return nil
	}
	m := &model.ApiKey{
		ID:        e.ID,
		Key:       e.Key,
		Title:     e.Title,
		CompanyID: e.CompanyID,
		CreatedAt: e.CreatedAt,
	}
	if d := deletedAt(e.DeletedAt); d != nil {
		m.DeletedAt = &d.Time
	}
	return m
}

func toApiKeyModels(entities []*ApiKeyEntity) []*model.ApiKey {
	if entities == nil {
		return nil
	}
	models := make([]*model.ApiKey, len(entities))
	for i, e := range entities {
		models[i] = toApiKeyModel(e)
	}
	return models
}
