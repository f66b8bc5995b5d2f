package main

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gateway "github.com/nimasrn/notification-gateway/internal/gateways"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestServer(t *testing.T, rate float64) (*httptest.Server, *MockProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	provider := NewMockProvider("test-key", rate, 0, 0)
	srv := httptest.NewServer(SetupRouter(NewHandler(provider)))
	t.Cleanup(srv.Close)
	return srv, provider
}

func newClient(srv *httptest.Server) *gateway.Client {
	return gateway.NewClient(gateway.Config{
		BaseURL:          srv.URL,
		ApiKey:           "test-key",
		VerifyTemplateID: 612409,
		InviteTemplateID: 642348,
		Timeout:          2 * time.Second,
	})
}

func TestMockProvider_ServesGatewayClient(t *testing.T) {
	srv, provider := newTestServer(t, 1)

	code, ok := newClient(srv).SendVerificationCode(context.Background(), "09121234567")
	require.True(t, ok)
	assert.Len(t, code, 5)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "9121234567", provider.sent[0].Mobile)
	assert.Equal(t, 612409, provider.sent[0].TemplateID)
}

func TestMockProvider_Rejects(t *testing.T) {
	srv, provider := newTestServer(t, 0)

	assert.False(t, newClient(srv).SendInvite(context.Background(), "09121234567", "Acme"))
	assert.Empty(t, provider.sent)
}

func TestMockProvider_WrongApiKey(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(srv.URL + "/v1/send/verify")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("x-api-key", "nope")
	req.SetBodyString(`{"mobile":"9121234567","templateId":1,"parameters":[]}`)

	require.NoError(t, fasthttp.DoTimeout(req, resp, time.Second))
	assert.Equal(t, 401, resp.StatusCode())
}
