package gateway

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/prom"
	"github.com/valyala/fasthttp"
)

const (
	verifyPath = "/v1/send/verify"

	OperationVerify = "verify"
	OperationInvite = "invite"
)

var ErrRejected = errors.New("sms provider rejected the request")

type Config struct {
	BaseURL          string
	ApiKey           string
	VerifyTemplateID int
	InviteTemplateID int
	Timeout          time.Duration

	// Dial overrides how connections are opened; tests use it to reach an
	// in-memory listener.
	Dial fasthttp.DialFunc
}

type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VerifyRequest struct {
	Mobile     string      `json:"mobile"`
	TemplateID int         `json:"templateId"`
	Parameters []Parameter `json:"parameters"`
}

type VerifyResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Client sends templated verification SMS. Every call reports only success
// or failure; provider errors are logged, not returned.
type Client struct {
	config Config
	client *fasthttp.Client
}

func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Client{
		config: config,
		client: &fasthttp.Client{
			Name:                "notification-gateway",
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
			Dial:                config.Dial,
		},
	}
}

// SendVerificationCode sends a fresh 5 digit code to phone and returns it.
func (c *Client) SendVerificationCode(ctx context.Context, phone string) (string, bool) {
	code, err := newCode()
	if err != nil {
		logger.Error("[sms] failed to generate verification code", "error", err)
		return "", false
	}

	ok := c.send(ctx, OperationVerify, phone, c.config.VerifyTemplateID, []Parameter{
		{Name: "code", Value: code},
	})
	if !ok {
		return "", false
	}
	return code, true
}

// SendInvite tells phone that companyName sent it a message.
func (c *Client) SendInvite(ctx context.Context, phone string, companyName string) bool {
	return c.send(ctx, OperationInvite, phone, c.config.InviteTemplateID, []Parameter{
		{Name: "company", Value: companyName},
		{Name: "phone", Value: "0" + nationalNumber(phone)},
	})
}

func (c *Client) send(ctx context.Context, operation, phone string, templateID int, params []Parameter) bool {
	body, err := json.Marshal(VerifyRequest{
		Mobile:     nationalNumber(phone),
		TemplateID: templateID,
		Parameters: params,
	})
	if err != nil {
		logger.Error("[sms] failed to marshal request", "operation", operation, "error", err)
		return false
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, verifyPath, body)
	prom.ObserveGateway(operation, time.Since(start).Seconds())

	if err != nil {
		logger.Warn("[sms] request failed", "operation", operation, "phone", logger.MaskPhone(phone), "error", err)
		return false
	}
	if resp.Status != 1 {
		logger.Warn("[sms] provider refused", "operation", operation, "phone", logger.MaskPhone(phone), "status", resp.Status, "message", resp.Message)
		return false
	}

	logger.Info("[sms] sent", "operation", operation, "phone", logger.MaskPhone(phone), "latency", time.Since(start).String())
	return true
}

// doRequest posts body and decodes the provider response. The call never
// outlives the configured timeout even when ctx has a later deadline.
func (c *Client) doRequest(ctx context.Context, path string, body []byte) (*VerifyResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(strings.TrimRight(c.config.BaseURL, "/") + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("x-api-key", c.config.ApiKey)
	req.SetBody(body)

	deadline := time.Now().Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var out VerifyResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		if resp.StatusCode() != fasthttp.StatusOK {
			return nil, fmt.Errorf("%w: http status %d", ErrRejected, resp.StatusCode())
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &out, nil
}

// nationalNumber drops the trunk prefix the provider does not accept.
func nationalNumber(phone string) string {
	return strings.TrimPrefix(phone, "0")
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+10000, 10), nil
}
