package repository

import (
	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type TicketEntity struct {
	pg.Model
	CompanyID int64  `gorm:"column:company_id;not null;index"`
	UserID    int64  `gorm:"column:user_id;not null;index"`
	Subject   string `gorm:"column:subject;not null"`
	Body      string `gorm:"column:body;not null"`
	ReplyID   *int64 `gorm:"column:reply_id"`
	Status    string `gorm:"column:status;not null;default:pending"`
}

func (TicketEntity) TableName() string {
	return "tickets"
}

func toTicketEntity(m *model.Ticket) *TicketEntity {
	if m == nil {
		return nil
	}
	e := &TicketEntity{
		CompanyID: m.CompanyID,
		UserID:    m.UserID,
		Subject:   m.Subject,
		Body:      m.Body,
		ReplyID:   m.ReplyID,
		Status:    string(m.Status),
	}
	e.ID = m.ID
	return e
}

func toTicketModel(e *TicketEntity) *model.Ticket {
	if e == nil {
		return nil
	}
	return &model.Ticket{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		UserID:    e.UserID,
		Subject:   e.Subject,
		Body:      e.Body,
		ReplyID:   e.ReplyID,
		Status:    model.TicketStatus(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

func toTicketModels(entities []*TicketEntity) []*model.Ticket {
	if entities == nil {
		return nil
	}
	models := make([]*model.Ticket, len(entities))
	for i, e := range entities {
		models[i] = toTicketModel(e)
	}
	return models
}
