package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type TicketService interface {
	Create(ctx context.Context, requester model.Requester, req model.TicketCreateRequest) (*model.Ticket, error)
	UpdateStatus(ctx context.Context, requester model.Requester, id int64, status model.TicketStatus) error
	List(ctx context.Context, requester model.Requester) ([]*model.Ticket, error)
	Get(ctx context.Context, requester model.Requester, id int64) (*model.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func RegisterTicketRoutes(g *router.Group, h *TicketHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/tickets", auth(withRequester(h.List)))
	g.POST("/tickets", auth(withRequester(h.Create)))
	g.GET("/tickets/{id}", auth(withRequester(h.Get)))
	g.PATCH("/tickets/{id}", auth(withRequester(h.UpdateStatus)))
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) Create(ctx *xhttp.RequestCtx, r model.Requester) {
	var req model.TicketCreateRequest
	if !bind(ctx, &req) {
		return
	}
	ticket, err := h.svc.Create(ctx, r, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusCreated, "ticket created.", ticket)
}

func (h *TicketHandler) List(ctx *xhttp.RequestCtx, r model.Requester) {
	tickets, err := h.svc.List(ctx, r)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "", tickets)
}

func (h *TicketHandler) Get(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	ticket, err := h.svc.Get(ctx, r, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "", ticket)
}

func (h *TicketHandler) UpdateStatus(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req model.TicketStatusRequest
	if !bind(ctx, &req) {
		return
	}
	if err := h.svc.UpdateStatus(ctx, r, id, req.Status); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "ticket updated.", nil)
}
