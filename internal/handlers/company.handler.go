package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type CompanyService interface {
	Create(ctx context.Context, requester model.Requester, req model.CompanyCreateRequest) (*model.Company, error)
}

type CompanyHandler struct {
	svc CompanyService
}

func RegisterCompanyRoutes(g *router.Group, h *CompanyHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/companies", auth(withRequester(h.Create)))
}

func NewCompanyHandler(svc CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) Create(ctx *xhttp.RequestCtx, r model.Requester) {
	var req model.CompanyCreateRequest
	if !bind(ctx, &req) {
		return
	}
	company, err := h.svc.Create(ctx, r, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusCreated, "company created.", company)
}
