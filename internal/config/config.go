package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"

	MailLog      = "log"
	MailResend   = "resend"
	MailSendGrid = "sendgrid"
	MailSMTP     = "smtp"
)

type Config struct {
	Port string

	StoreBackend  string
	MongoURI      string
	DBName        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ClientSecret string

	MailTransport  string
	ResendAPIKey   string
	SendGridAPIKey string
	FromEmail      string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	MailTimeout    time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	return &Config{
		Port: GetEnv("PORT", "8080"),

		StoreBackend:  GetEnv("STORE_BACKEND", StoreMemory),
		MongoURI:      GetEnv("MONGODB_URI", ""),
		DBName:        GetEnv("DB_NAME", "bsk"),
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		ClientSecret: GetEnv("CLIENT_SECRET", ""),

		MailTransport:  GetEnv("MAIL_TRANSPORT", MailLog),
		ResendAPIKey:   GetEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: GetEnv("SENDGRID_API_KEY", ""),
		FromEmail:      GetEnv("FROM_EMAIL", "no-reply@yourdomain.com"),
		SMTPHost:       GetEnv("SMTP_HOST", "localhost"),
		SMTPPort:       GetEnvAsInt("SMTP_PORT", 25),
		SMTPUsername:   GetEnv("SMTP_USERNAME", ""),
		SMTPPassword:   GetEnv("SMTP_PASSWORD", ""),
		MailTimeout:    GetEnvAsDuration("MAIL_TIMEOUT", 10*time.Second),
	}
}

// Validate reports every missing or unknown setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ClientSecret == "" {
		errs = append(errs, errors.New("CLIENT_SECRET is required"))
	}

	switch c.StoreBackend {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo store"))
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.MailTransport {
	case MailLog, MailSMTP:
	case MailResend:
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required for the resend transport"))
		}
	case MailSendGrid:
		if c.SendGridAPIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for the sendgrid transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport))
	}

	return errors.Join(errs...)
}
