package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type ApiKeyService interface {
	Issue(ctx context.Context, requester model.Requester, req model.ApiKeyCreateRequest) (*model.ApiKey, error)
	List(ctx context.Context, requester model.Requester) ([]*model.ApiKey, error)
	Revoke(ctx context.Context, requester model.Requester, id int64) error
	Restore(ctx context.Context, requester model.Requester, id int64) error
}

type ApiKeyHandler struct {
	svc ApiKeyService
}

func RegisterApiKeyRoutes(g *router.Group, h *ApiKeyHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/api-keys", auth(withRequester(h.List)))
	g.POST("/api-keys", auth(withRequester(h.Issue)))
	g.DELETE("/api-keys/{id}", auth(withRequester(h.Revoke)))
	g.PATCH("/api-keys/{id}/restore", auth(withRequester(h.Restore)))
}

func NewApiKeyHandler(svc ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{svc: svc}
}

func (h *ApiKeyHandler) Issue(ctx *xhttp.RequestCtx, r model.Requester) {
	var req model.ApiKeyCreateRequest
	if !bind(ctx, &req) {
		return
	}
	key, err := h.svc.Issue(ctx, r, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusCreated, "api key created.", key)
}

func (h *ApiKeyHandler) List(ctx *xhttp.RequestCtx, r model.Requester) {
	keys, err := h.svc.List(ctx, r)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "", keys)
}

func (h *ApiKeyHandler) Revoke(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := h.svc.Revoke(ctx, r, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "api key revoked.", nil)
}

func (h *ApiKeyHandler) Restore(ctx *xhttp.RequestCtx, r model.Requester) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := h.svc.Restore(ctx, r, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "api key restored.", nil)
}
