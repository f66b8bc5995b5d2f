package handlers

import (
	"errors"
	"strconv"

	"github.com/nimasrn/notification-gateway/internal/services"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/validator"
)

var validate = validator.New()

// bind decodes and validates the request body into dst. On failure the
// 422 response is already written.
func bind(ctx *xhttp.RequestCtx, dst any) bool {
	if err := xhttp.ReadJSON(ctx, dst); err != nil {
		xhttp.WriteError(ctx, xhttp.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return false
	}
	if err := validate.Validate(dst); err != nil {
		writeServiceError(ctx, err)
		return false
	}
	return true
}

// writeServiceError maps service errors onto the response envelope. Unknown
// errors are logged and answered with a generic 500.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	if fields := validator.Fields(err); fields != nil {
		xhttp.WriteFieldErrors(ctx, xhttp.StatusUnprocessableEntity, "validation failed.", fields)
		return
	}

	var dispatchErr *services.DispatchError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		xhttp.WriteError(ctx, xhttp.StatusUnauthorized, "unauthorized.")
	case errors.Is(err, services.ErrForbidden):
		xhttp.WriteError(ctx, xhttp.StatusForbidden, "forbidden.")
	case errors.Is(err, services.ErrNotFound):
		xhttp.WriteError(ctx, xhttp.StatusNotFound, "not found.")
	case errors.Is(err, services.ErrTemplateNotActive),
		errors.Is(err, services.ErrMissingVariables),
		errors.Is(err, services.ErrInvalidVariables),
		errors.Is(err, services.ErrInvalidPlatform),
		errors.Is(err, services.ErrUnprocessableFields),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrWrongCode),
		errors.Is(err, services.ErrAlreadyOwner),
		errors.Is(err, services.ErrPlanUnavailable),
		errors.Is(err, services.ErrMessageTypeUnavailable):
		xhttp.WriteError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &dispatchErr):
		xhttp.WriteError(ctx, xhttp.StatusInternalServerError, dispatchErr.Error())
	case errors.Is(err, services.ErrVerificationNotSent):
		xhttp.WriteError(ctx, xhttp.StatusInternalServerError, err.Error())
	default:
		logger.Error("[handlers] request failed",
			"path", string(ctx.Path()),
			"request_id", xhttp.RequestID(ctx),
			"error", err,
		)
		xhttp.WriteError(ctx, xhttp.StatusInternalServerError, "server error.")
	}
}

// pathID reads the {id} route parameter, answering 404 when it is not a
// positive integer.
func pathID(ctx *xhttp.RequestCtx) (int64, bool) {
	id, ok := xhttp.PathInt64(ctx, "id")
	if !ok {
		xhttp.WriteError(ctx, xhttp.StatusNotFound, "not found.")
	}
	return id, ok
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) int {
	n, _ := strconv.Atoi(query(ctx, key))
	return n
}
