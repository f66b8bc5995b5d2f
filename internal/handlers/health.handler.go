package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func RegisterHealthRoutes(g *router.Group, h *HealthHandler) {
	g.GET("/health", h.GetHealth)
}

// NewHealthHandler reports each named dependency on /health.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	c, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	status := xhttp.StatusOK
	report := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(c); err != nil {
			report[name] = err.Error()
			status = xhttp.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}

	if status != xhttp.StatusOK {
		xhttp.WriteJSON(ctx, status, xhttp.Envelope{Status: xhttp.EnvelopeError, Message: "unhealthy.", Data: report})
		return
	}
	xhttp.WriteSuccess(ctx, status, "healthy.", report)
}
