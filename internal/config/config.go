package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/pg"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every setting of the gateway processes. Values come from the
// environment only, optionally preloaded from a dotenv file.
type Config struct {
	AppEnv  string `env:"APP_ENV,default=dev"`
	AppName string `env:"APP_NAME,default=notification_gateway"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=10s"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT,default=5432"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT,default=5432"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX,default=notify:"`

	PromNamespace  string `env:"PROM_NAMESPACE,default=notification_gateway"`
	PromListenAddr string `env:"PROM_LISTEN_ADDR"`
	PromURI        string `env:"PROM_URI,default=/metrics"`

	LogLevel string `env:"LOG_LEVEL"`

	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	SmsBaseURL          string        `env:"SMS_BASE_URL,default=https://api.sms.ir"`
	SmsApiKey           string        `env:"SMS_API_KEY"`
	SmsVerifyTemplateID int           `env:"SMS_VERIFY_TEMPLATE_ID,default=612409"`
	SmsInviteTemplateID int           `env:"SMS_INVITE_TEMPLATE_ID,default=642348"`
	SmsTimeout          time.Duration `env:"SMS_TIMEOUT,default=5s"`

	VerificationCodeTTL time.Duration `env:"VERIFICATION_CODE_TTL,default=2m"`
	InviteLockTTL       time.Duration `env:"INVITE_LOCK_TTL,default=30s"`

	EventsStream string `env:"EVENTS_STREAM,default=events:messages"`
	EventsMaxLen int64  `env:"EVENTS_MAX_LEN,default=100000"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	c, err := FromEnviron()
	if err != nil {
		return err
	}
	config = c
	return nil
}

// FromEnviron maps the current environment onto a new Config.
func FromEnviron() (*Config, error) {
	c := &Config{}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return nil, errors.Wrap(err, "failed to map env variables to configuration")
	}
	if c.AuthJWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	return c, nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

func (c *Config) PostgresRead() pg.Config {
	return pg.Config{
		Host:     c.PostgresReadHost,
		Port:     c.PostgresReadPort,
		User:     c.PostgresReadUser,
		Password: c.PostgresReadPassword,
		Database: c.PostgresReadDatabase,
	}
}

func (c *Config) PostgresWrite() pg.Config {
	return pg.Config{
		Host:     c.PostgresWriteHost,
		Port:     c.PostgresWritePort,
		User:     c.PostgresWriteUser,
		Password: c.PostgresWritePassword,
		Database: c.PostgresWriteDatabase,
	}
}
