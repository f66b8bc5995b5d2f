package model

import "time"

type TicketStatus string

const (
	TicketStatusPending TicketStatus = "pending"
	TicketStatusChecked TicketStatus = "checked"
	TicketStatusClosed  TicketStatus = "closed"
)

type Ticket struct {
	ID        int64        `json:"id"`
	CompanyID int64        `json:"company_id"`
	UserID    int64        `json:"user_id"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	ReplyID   *int64       `json:"reply_id,omitempty"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

type TicketCreateRequest struct {
	CompanyID int64  `json:"company_id" validate:"required,gt=0"`
	Subject   string `json:"subject"    validate:"required,max=255"`
	Body      string `json:"body"       validate:"required,min=10,max=1000"`
	ReplyID   *int64 `json:"reply_id"   validate:"omitempty,gt=0"`
}

type TicketStatusRequest struct {
	Status TicketStatus `json:"status" validate:"required,oneof=pending checked closed"`
}

// TicketFilter narrows ticket listings; zero values mean no restriction.
type TicketFilter struct {
	CompanyID int64
	UserID    int64
}

// Allows reports whether t falls inside the filter.
func (f TicketFilter) Allows(t *Ticket) bool {
	if f.CompanyID > 0 && t.CompanyID != f.CompanyID {
		return false
	}
	if f.UserID > 0 && t.UserID != f.UserID {
		return false
	}
	return true
}
