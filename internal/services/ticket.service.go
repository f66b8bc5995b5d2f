package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/logger"
)

type TicketService struct {
	tickets   TicketRepository
	companies CompanyRepository
	tx        Transactor
}

func NewTicketService(tickets TicketRepository, companies CompanyRepository, tx Transactor) *TicketService {
	return &TicketService{
		tickets:   tickets,
		companies: companies,
		tx:        tx,
	}
}

// Create files a ticket for the requester. Owners file under their own
// company only; a reply must target a ticket the requester can see and marks
// it checked in the same transaction.
func (s *TicketService) Create(ctx context.Context, requester model.Requester, req model.TicketCreateRequest) (*model.Ticket, error) {
	f, err := s.scope(ctx, requester)
	if err != nil {
		return nil, err
	}
	if f.CompanyID > 0 && req.CompanyID != f.CompanyID {
		return nil, ErrNotFound
	}
	if _, err := s.companies.FindByID(ctx, req.CompanyID); err != nil {
		return nil, notFound(err, "find company")
	}

	var ticket *model.Ticket
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.ReplyID != nil {
			parent, err := s.tickets.FindByID(ctx, *req.ReplyID)
			if err != nil {
				return notFound(err, "find parent ticket")
			}
			if !f.Allows(parent) {
				return ErrNotFound
			}
			if parent.CompanyID != req.CompanyID {
				return ErrUnprocessableFields
			}
			if err := s.tickets.UpdateStatus(ctx, parent.ID, model.TicketStatusChecked); err != nil {
				return notFound(err, "check parent ticket")
			}
		}

		var err error
		ticket, err = s.tickets.Create(ctx, &model.Ticket{
			CompanyID: req.CompanyID,
			UserID:    requester.ID,
			Subject:   req.Subject,
			Body:      req.Body,
			ReplyID:   req.ReplyID,
			Status:    model.TicketStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("[ticket] created", "ticket_id", ticket.ID, "company_id", ticket.CompanyID, "user_id", requester.ID)
	return ticket, nil
}

// UpdateStatus is reserved to admins.
func (s *TicketService) UpdateStatus(ctx context.Context, requester model.Requester, id int64, status model.TicketStatus) error {
	if !requester.Is(model.RoleAdmin) {
		return ErrForbidden
	}
	switch status {
	case model.TicketStatusPending, model.TicketStatusChecked, model.TicketStatusClosed:
	default:
		return ErrUnprocessableFields
	}
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return notFound(err, "update ticket")
	}
	return nil
}

// List returns every ticket to admins, the company's tickets to owners and
// the requester's own tickets to users.
func (s *TicketService) List(ctx context.Context, requester model.Requester) ([]*model.Ticket, error) {
	f, err := s.scope(ctx, requester)
	if err != nil {
		return nil, err
	}
	return s.tickets.List(ctx, f)
}

func (s *TicketService) Get(ctx context.Context, requester model.Requester, id int64) (*model.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find ticket")
	}
	f, err := s.scope(ctx, requester)
	if err != nil {
		return nil, err
	}
	if !f.Allows(ticket) {
		return nil, ErrNotFound
	}
	return ticket, nil
}

func (s *TicketService) scope(ctx context.Context, requester model.Requester) (model.TicketFilter, error) {
	switch requester.Role {
	case model.RoleAdmin:
		return model.TicketFilter{}, nil
	case model.RoleOwner:
		company, err := s.companies.FindByOwner(ctx, requester.ID)
		if err != nil {
			return model.TicketFilter{}, notFound(err, "find company")
		}
		return model.TicketFilter{CompanyID: company.ID}, nil
	case model.RoleUser:
		return model.TicketFilter{UserID: requester.ID}, nil
	default:
		return model.TicketFilter{}, ErrForbidden
	}
}
