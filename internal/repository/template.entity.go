package repository

import (
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"gorm.io/datatypes"
)

type TemplateEntity struct {
	pg.Model
	Title         string `gorm:"column:title;not null"`
	Text          string `gorm:"column:text;not null"`
	CompanyID     int64  `gorm:"column:company_id;not null;index"`
	MessageTypeID int64  `gorm:"column:message_type_id;not null"`
	Status        string `gorm:"column:status;not null;default:pending"`
	IsActive      bool   `gorm:"column:is_active;not null;default:false"`
}

func (TemplateEntity) TableName() string {
	return "templates"
}

type MessageTypeEntity struct {
	pg.Model
	Title     string                      `gorm:"column:title;not null"`
	Variables datatypes.JSONSlice[string] `gorm:"column:variables"`
	IsActive  bool                        `gorm:"column:is_active;not null"`
}

func (MessageTypeEntity) TableName() string {
	return "message_types"
}

func toTemplateEntity(m *model.Template) *TemplateEntity {
	if m == nil {
		return nil
	}
	e := &TemplateEntity{
		Title:         m.Title,
		Text:          m.Text,
		CompanyID:     m.CompanyID,
		MessageTypeID: m.MessageTypeID,
		Status:        string(m.Status),
		IsActive:      m.IsActive,
	}
	e.ID = m.ID
	return e
}

func toTemplateModel(e *TemplateEntity) *model.Template {
	if e == nil {
		return nil
	}
	return &model.Template{
		ID:            e.ID,
		Title:         e.Title,
		Text:          e.Text,
		CompanyID:     e.CompanyID,
		MessageTypeID: e.MessageTypeID,
		Status:        model.TemplateStatus(e.Status),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
	}
}

func toMessageTypeModel(e *MessageTypeEntity) *model.MessageType {
	if e == nil {
		return nil
	}
	return &model.MessageType{
		ID:        e.ID,
		Title:     e.Title,
		Variables: []string(e.Variables),
		IsActive:  e.IsActive,
	}
}
