package repository

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/pg"
)

type TicketRepository struct {
	*pg.DB
}

func NewTicketRepository(db *pg.DB) *TicketRepository {
	return &TicketRepository{
		db,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	entity := toTicketEntity(t)
	if entity.Status == "" {
		entity.Status = string(model.TicketStatusPending)
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toTicketModel(entity), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*model.Ticket, error) {
	var entity TicketEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		return nil, mapError(err)
	}
	return toTicketModel(&entity), nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) error {
	res := r.Write(ctx).Model(&TicketEntity{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, f model.TicketFilter) ([]*model.Ticket, error) {
	q := r.Read(ctx).Model(&TicketEntity{})
	if f.CompanyID > 0 {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	var entities []*TicketEntity
	if err := q.Order("id DESC").Find(&entities).Error; err != nil {
		return nil, mapError(err)
	}
	return toTicketModels(entities), nil
}
