// Command smsmock is a local stand-in for the SMS provider's verify API. It
// accepts the same requests the gateway client sends and answers with a
// configurable success rate, logging every code it would have delivered.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	gateway "github.com/nimasrn/notification-gateway/internal/gateways"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	statusOK       = 1
	statusRejected = 0
)

// MockProvider simulates the provider's delivery decision.
type MockProvider struct {
	mu           sync.Mutex
	apiKey       string
	deliveryRate float64
	minDelay     time.Duration
	maxDelay     time.Duration
	rng          *rand.Rand
	sent         []gateway.VerifyRequest
}

func NewMockProvider(apiKey string, deliveryRate float64, minDelay, maxDelay time.Duration) *MockProvider {
	return &MockProvider{
		apiKey:       apiKey,
		deliveryRate: deliveryRate,
		minDelay:     minDelay,
		maxDelay:     maxDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockProvider) randomDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	return m.minDelay + time.Duration(m.rng.Int63n(int64(delta)))
}

func (m *MockProvider) shouldSucceed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64() < m.deliveryRate
}

func (m *MockProvider) record(req gateway.VerifyRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, req)
}

type Handler struct {
	provider *MockProvider
}

func NewHandler(provider *MockProvider) *Handler {
	return &Handler{provider: provider}
}

// SendVerify handles POST /v1/send/verify.
func (h *Handler) SendVerify(c *gin.Context) {
	if h.provider.apiKey != "" && c.GetHeader("x-api-key") != h.provider.apiKey {
		c.JSON(http.StatusUnauthorized, gateway.VerifyResponse{Status: statusRejected, Message: "invalid api key"})
		return
	}

	var req gateway.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Mobile == "" || req.TemplateID == 0 {
		c.JSON(http.StatusBadRequest, gateway.VerifyResponse{Status: statusRejected, Message: "invalid request"})
		return
	}

	time.Sleep(h.provider.randomDelay())

	if !h.provider.shouldSucceed() {
		log.Warn().
			Str("mobile", req.Mobile).
			Int("template_id", req.TemplateID).
			Msg("verify sms rejected")
		c.JSON(http.StatusOK, gateway.VerifyResponse{Status: statusRejected, Message: "delivery failed"})
		return
	}

	h.provider.record(req)
	event := log.Info().Str("mobile", req.Mobile).Int("template_id", req.TemplateID)
	for _, p := range req.Parameters {
		event = event.Str(p.Name, p.Value)
	}
	event.Msg("verify sms sent")

	c.JSON(http.StatusOK, gateway.VerifyResponse{Status: statusOK, Message: "success"})
}

// UpdateConfig allows changing the delivery rate at runtime.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		DeliveryRate *float64 `json:"delivery_rate"`
	}
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	h.provider.mu.Lock()
	if config.DeliveryRate != nil && *config.DeliveryRate >= 0 && *config.DeliveryRate <= 1.0 {
		h.provider.deliveryRate = *config.DeliveryRate
		log.Info().Float64("rate", *config.DeliveryRate).Msg("updated delivery rate")
	}
	rate := h.provider.deliveryRate
	h.provider.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"delivery_rate": rate})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request processed")
	})

	router.POST("/v1/send/verify", handler.SendVerify)
	router.PUT("/config", handler.UpdateConfig)
	router.GET("/health", handler.HealthCheck)
	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	apiKey := getEnv("SMS_API_KEY", "")
	deliveryRate := getEnvFloat("DELIVERY_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 50*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 300*time.Millisecond)

	log.Info().
		Str("port", port).
		Float64("delivery_rate", deliveryRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("starting mock sms provider")

	router := SetupRouter(NewHandler(NewMockProvider(apiKey, deliveryRate, minDelay, maxDelay)))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
