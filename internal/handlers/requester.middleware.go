package handlers

import (
	"bytes"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nimasrn/notification-gateway/internal/model"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

type ctxKey string

const requesterKey ctxKey = "requester"

var bearerPrefix = []byte("Bearer ")

// RequesterClaims are the claims expected on bearer tokens. The subject is
// the numeric user id.
type RequesterClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// RequireRequester authenticates HS256 bearer tokens and stores the caller
// on the request for the wrapped handler.
func RequireRequester(secret []byte) xhttp.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			header := ctx.Request.Header.Peek("Authorization")
			if !bytes.HasPrefix(header, bearerPrefix) {
				xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
				return
			}

			var claims RequesterClaims
			if _, err := parser.ParseWithClaims(string(header[len(bearerPrefix):]), &claims, keyFunc); err != nil {
				xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
				return
			}
			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || id <= 0 || !claims.Role.Valid() {
				xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
				return
			}

			ctx.SetUserValue(requesterKey, model.Requester{ID: id, Role: claims.Role})
			next(ctx)
		}
	}
}

// RequesterFrom returns the caller stored by RequireRequester.
func RequesterFrom(ctx *xhttp.RequestCtx) (model.Requester, bool) {
	r, ok := ctx.UserValue(requesterKey).(model.Requester)
	return r, ok
}

// withRequester adapts a handler that needs the caller. Requests that did
// not pass RequireRequester are rejected.
func withRequester(h func(ctx *xhttp.RequestCtx, r model.Requester)) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		r, ok := RequesterFrom(ctx)
		if !ok {
			xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
			return
		}
		h(ctx, r)
	}
}
