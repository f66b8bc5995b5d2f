package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type TemplateService interface {
	Submit(ctx context.Context, requester model.Requester, req model.TemplateCreateRequest) (*model.Template, error)
	Moderate(ctx context.Context, requester model.Requester, id int64, status model.TemplateStatus) error
	SetActive(ctx context.Context, requester model.Requester, id int64, active bool) error
}

type TemplateHandler struct {
	svc TemplateService
}

func RegisterTemplateRoutes(g *router.Group, h *TemplateHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/templates", auth(withRequester(h.Submit)))
	g.PATCH("/templates/{id}/moderate", auth(withRequester(h.Moderate)))
	g.PATCH("/templates/{id}/active", auth(withRequester(h.SetActive)))
}

func NewTemplateHandler(svc TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

func (h *TemplateHandler) Submit(ctx *xhttp.RequestCtx, r model.Requester) {
	var req model.TemplateCreateRequest
	if !bind(ctx, &req) {
		return
	}
	tpl, err := h.svc.Submit(ctx, r, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusCreated, "template submitted.", tpl)
}

func (h *TemplateHandler) Moderate(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req model.TemplateModerateRequest
	if !bind(ctx, &req) {
		return
	}
	if err := h.svc.Moderate(ctx, r, id, req.Status); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "template moderated.", nil)
}

func (h *TemplateHandler) SetActive(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req model.TemplateActiveRequest
	if !bind(ctx, &req) {
		return
	}
	if err := h.svc.SetActive(ctx, r, id, *req.IsActive); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "template updated.", nil)
}
