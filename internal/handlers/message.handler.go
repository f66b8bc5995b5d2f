package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

const HeaderApiKey = "x-api-key"

type Dispatcher interface {
	Dispatch(ctx context.Context, apiKey string, req model.DispatchRequest) (*model.DispatchResult, error)
}

type InboxService interface {
	Get(ctx context.Context, requester model.Requester, id int64) (*model.Message, error)
	ListInbox(ctx context.Context, requester model.Requester, f model.InboxFilter) ([]*model.Message, int64, error)
	UpdateStatus(ctx context.Context, requester model.Requester, id int64, u model.MessageUpdate) error
}

type MessageHandler struct {
	dispatcher Dispatcher
	inbox      InboxService
}

func RegisterMessageRoutes(g *router.Group, h *MessageHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/messages", h.Dispatch)
	g.GET("/messages", auth(withRequester(h.ListInbox)))
	g.GET("/messages/{id}", auth(withRequester(h.Get)))
	g.PATCH("/messages/{id}", auth(withRequester(h.UpdateStatus)))
}

func NewMessageHandler(dispatcher Dispatcher, inbox InboxService) *MessageHandler {
	return &MessageHandler{
		dispatcher: dispatcher,
		inbox:      inbox,
	}
}

type dispatchResponse struct {
	ID      int64 `json:"id"`
	To      int64 `json:"to"`
	Invited bool  `json:"invited"`
}

type inboxResponse struct {
	Items []*model.Message `json:"items"`
	Total int64            `json:"total"`
}

func (h *MessageHandler) Dispatch(ctx *xhttp.RequestCtx) {
	apiKey := string(ctx.Request.Header.Peek(HeaderApiKey))
	if apiKey == "" {
		xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
		return
	}

	var req model.DispatchRequest
	if !bind(ctx, &req) {
		return
	}

	res, err := h.dispatcher.Dispatch(ctx, apiKey, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusCreated, "message sent.", dispatchResponse{
		ID:      res.MessageID,
		To:      res.To,
		Invited: res.Invited,
	})
}

func (h *MessageHandler) ListInbox(ctx *xhttp.RequestCtx, r model.Requester) {
	f := model.InboxFilter{
		Limit:  queryInt(ctx, "limit"),
		Offset: queryInt(ctx, "offset"),
	}
	if v := query(ctx, "is_read"); v != "" {
		read, err := strconv.ParseBool(v)
		if err != nil {
			xhttp.WriteFieldErrors(ctx, xhttp.StatusUnprocessableEntity, "validation failed.", map[string]string{"is_read": "is_read must be a boolean"})
			return
		}
		f.IsRead = &read
	}
	if v := query(ctx, "status"); v != "" {
		status, ok := model.ParseMessageStatus(v)
		if !ok {
			xhttp.WriteFieldErrors(ctx, xhttp.StatusUnprocessableEntity, "validation failed.", map[string]string{"status": "status must be one of [sent received failed]"})
			return
		}
		f.Status = &status
	}

	items, total, err := h.inbox.ListInbox(ctx, r, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "", inboxResponse{Items: items, Total: total})
}

func (h *MessageHandler) Get(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	msg, err := h.inbox.Get(ctx, r, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "", msg)
}

func (h *MessageHandler) UpdateStatus(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var u model.MessageUpdate
	if !bind(ctx, &u) {
		return
	}
	if err := h.inbox.UpdateStatus(ctx, r, id, u); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "message updated.", nil)
}
