package main

import (
	"os"
	"strings"
	"time"

	"github.com/nimasrn/notification-gateway/internal/config"
	gateway "github.com/nimasrn/notification-gateway/internal/gateways"
	"github.com/nimasrn/notification-gateway/internal/handlers"
	"github.com/nimasrn/notification-gateway/internal/queue"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/services"
	xhttp "github.com/nimasrn/notification-gateway/pkg/http"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"github.com/nimasrn/notification-gateway/pkg/prom"
	"github.com/nimasrn/notification-gateway/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer func() { _ = logger.Sync() }()

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	if cfg.LogLevel != "" {
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn("invalid log level", "level", cfg.LogLevel, "error", err)
		}
	}
	logger.Info("starting notification gateway", "version", version, "commit", commit, "date", date)

	db, err := pg.CreateReadWrite(cfg.PostgresRead(), cfg.PostgresWrite(), cfg.AppEnv == "dev")
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{cfg.RedisAddr},
		ClientName: cfg.AppName,
		DB:         cfg.RedisDatabase,
		Username:   cfg.RedisUsername,
		Password:   cfg.RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if cfg.PromListenAddr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.PromListenAddr, cfg.PromURI)
	}

	events, err := queue.NewQueue(redisAdap, queue.QueueConfig{
		Name:   cfg.EventsStream,
		MaxLen: cfg.EventsMaxLen,
	})
	if err != nil {
		logger.Error("failed creating event queue", "error", err)
		return
	}

	sms := gateway.NewClient(gateway.Config{
		BaseURL:          cfg.SmsBaseURL,
		ApiKey:           cfg.SmsApiKey,
		VerifyTemplateID: cfg.SmsVerifyTemplateID,
		InviteTemplateID: cfg.SmsInviteTemplateID,
		Timeout:          cfg.SmsTimeout,
	})

	// repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// services
	authority := services.NewAuthority(apiKeyRepo, companyRepo)
	dispatchService := services.NewDispatchService(
		authority,
		services.NewTemplateEngine(templateRepo),
		services.NewRecipientResolver(userRepo, sms, redisAdap, cfg.InviteLockTTL),
		messageRepo,
		db,
		events,
	)
	messageService := services.NewMessageService(messageRepo)
	verificationService := services.NewVerificationService(userRepo, sms, redisAdap, cfg.VerificationCodeTTL)
	templateService := services.NewTemplateService(templateRepo, companyRepo)
	companyService := services.NewCompanyService(companyRepo, userRepo, db)
	ticketService := services.NewTicketService(ticketRepo, companyRepo, db)

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.Name = cfg.AppName
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(requestTimeout(cfg)))

	auth := handlers.RequireRequester([]byte(cfg.AuthJWTSecret))

	// v1 handlers
	g := s.Router.Group("/api/v1")
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": db,
		"redis":    redisAdap,
	}))
	handlers.RegisterAuthRoutes(g, handlers.NewAuthHandler(verificationService))
	handlers.RegisterMessageRoutes(g, handlers.NewMessageHandler(dispatchService, messageService), auth)
	handlers.RegisterApiKeyRoutes(g, handlers.NewApiKeyHandler(authority), auth)
	handlers.RegisterTemplateRoutes(g, handlers.NewTemplateHandler(templateService), auth)
	handlers.RegisterCompanyRoutes(g, handlers.NewCompanyHandler(companyService), auth)
	handlers.RegisterTicketRoutes(g, handlers.NewTicketHandler(ticketService), auth)

	done := s.CloseOnSignal()

	go func() {
		if err := s.ListenAndServe(cfg.HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-done
}

// requestTimeout leaves room for the SMS gateway call inside a dispatch.
func requestTimeout(cfg *config.Config) time.Duration {
	if floor := cfg.SmsTimeout + 2*time.Second; cfg.HttpRequestTimeout < floor {
		return floor
	}
	return cfg.HttpRequestTimeout
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
