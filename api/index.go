package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/caarlos0/env/v9"
	"go.uber.org/zap"

	"opalclean-api/res/catalog"
	"opalclean-api/res/mail"
	"opalclean-api/res/mail/sidemail"
	"opalclean-api/res/notification"
	"opalclean-api/res/notification/slack"
	"opalclean-api/res/session"
	"opalclean-api/res/session/memory"
	sessionredis "opalclean-api/res/session/redis"
	"opalclean-api/res/store/postgresql"
	"opalclean-api/res/verify"
	"opalclean-api/res/verify/turnstile"
	"opalclean-api/res/wizard"
	apphttp "opalclean-api/sys/http"
)

// CONFIGURATION CONVENTION:
// All environment variable configuration is centralized in this file (api/index.go).
// This provides a single location to view all configuration requirements and ensures
// consistent handling of environment variables across the application.
//
// REQUIRED Environment Variables (minimum to run):
// - DATABASE_POSTGRES_URL: PostgreSQL connection string
//
// OPTIONAL Environment Variables (with graceful degradation):
// - ENVIRONMENT: "production" tightens CORS and websocket origins (default: development)
// - FRONTEND_URL: trusted frontend origin, used in production only
// - REDIS_ADDR: Redis host:port for wizard sessions (default: in-process store)
// - REDIS_PASSWORD: Redis password (optional)
// - REDIS_DB: Redis database number (default: 0)
// - SIDEMAIL_API_KEY: Sidemail API key for confirmation emails (optional)
// - SIDEMAIL_API_URL: Sidemail API base URL (default: https://api.sidemail.io/v1)
// - SIDEMAIL_FROM_ADDRESS: sender address for customer emails
// - SIDEMAIL_ADMIN_INBOX: office inbox for the admin copy of each booking
// - SLACK_WEBHOOK_URL: Slack webhook URL for booking alerts (optional)
// - SLACK_TIMEOUT_SECONDS: timeout for notification requests in seconds (default: 5)
// - TURNSTILE_SECRET: Cloudflare Turnstile secret for submit verification (optional)

type config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL"`

	DatabaseURL string `env:"DATABASE_POSTGRES_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SidemailAPIKey      string `env:"SIDEMAIL_API_KEY"`
	SidemailAPIURL      string `env:"SIDEMAIL_API_URL" envDefault:"https://api.sidemail.io/v1"`
	SidemailFromAddress string `env:"SIDEMAIL_FROM_ADDRESS"`
	SidemailAdminInbox  string `env:"SIDEMAIL_ADMIN_INBOX"`

	SlackWebhookURL     string `env:"SLACK_WEBHOOK_URL"`
	SlackTimeoutSeconds int    `env:"SLACK_TIMEOUT_SECONDS" envDefault:"5"`

	TurnstileSecret string `env:"TURNSTILE_SECRET"`
}

// Global router initialized once
var (
	routerInstance http.Handler
	initOnce       sync.Once
	initError      error
)

func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize services only once using sync.Once
	initOnce.Do(func() {
		routerInstance, initError = buildRouter()
	})

	// The zap global may not be installed yet when init fails early (env
	// parse, logger construction), so report through stdlib log instead
	if initError != nil {
		log.Fatalf("Failed to initialize services: %v", initError)
	}

	routerInstance.ServeHTTP(w, r)
}

func buildRouter() (http.Handler, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	logger, err := buildLogger(cfg.Environment)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	storeInstance, err := postgresql.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	mailService := configMail(cfg, logger)
	notifier := configNotification(cfg, logger)

	submitter := apphttp.NewBookingSubmitter(storeInstance, cat, mailService, notifier, logger)
	engine := wizard.NewEngine(cat, submitter, logger)

	return apphttp.New(&apphttp.Config{
		Logger:      logger,
		Environment: cfg.Environment,
		FrontendURL: cfg.FrontendURL,
		Catalog:     cat,
		Engine:      engine,
		Sessions:    configSessions(cfg, logger),
		Store:       storeInstance,
		Verifier:    configVerifier(cfg, logger),
		Notifier:    notifier,
	}), nil
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func configSessions(cfg config, logger *zap.Logger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, wizard sessions will not survive restarts")
		return memory.New()
	}
	return sessionredis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func configMail(cfg config, logger *zap.Logger) mail.MailService {
	if cfg.SidemailAPIKey == "" {
		logger.Info("SIDEMAIL_API_KEY not set, email service disabled")
		return nil
	}
	return sidemail.New(cfg.SidemailAPIKey, cfg.SidemailAPIURL,
		cfg.SidemailFromAddress, cfg.SidemailAdminInbox, 10*time.Second, logger)
}

func configNotification(cfg config, logger *zap.Logger) notification.NotificationService {
	if cfg.SlackWebhookURL == "" {
		logger.Info("SLACK_WEBHOOK_URL not set, notifications disabled")
		return nil
	}
	timeout := time.Duration(cfg.SlackTimeoutSeconds) * time.Second
	return slack.New(cfg.SlackWebhookURL, timeout, logger)
}

func configVerifier(cfg config, logger *zap.Logger) verify.Verifier {
	if cfg.TurnstileSecret == "" {
		logger.Info("TURNSTILE_SECRET not set, submit verification disabled")
		return nil
	}
	return turnstile.New(cfg.TurnstileSecret, 10*time.Second, logger)
}
