package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type PhoneVerifier interface {
	CheckPhone(ctx context.Context, phone string) (*model.User, error)
	VerifyPhone(ctx context.Context, phone, code string) (*model.User, error)
}

type AuthHandler struct {
	verifier PhoneVerifier
}

func RegisterAuthRoutes(g *router.Group, h *AuthHandler) {
	g.POST("/auth/check-phone", h.CheckPhone)
	g.POST("/auth/verify-phone", h.VerifyPhone)
}

func NewAuthHandler(verifier PhoneVerifier) *AuthHandler {
	return &AuthHandler{verifier: verifier}
}

func (h *AuthHandler) CheckPhone(ctx *xhttp.RequestCtx) {
	var req model.CheckPhoneRequest
	if !bind(ctx, &req) {
		return
	}
	if _, err := h.verifier.CheckPhone(ctx, req.Phone); err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "verification code sent.", nil)
}

func (h *AuthHandler) VerifyPhone(ctx *xhttp.RequestCtx) {
	var req model.VerifyPhoneRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := h.verifier.VerifyPhone(ctx, req.Phone, req.Code)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	xhttp.WriteSuccess(ctx, xhttp.StatusOK, "phone verified.", user)
}
