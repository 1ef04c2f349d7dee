package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "DB_NAME", "MAIL_TRANSPORT", "FROM_EMAIL", "SMTP_PORT", "MAIL_TIMEOUT", "CLIENT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "bsk", cfg.DBName)
	assert.Equal(t, MailLog, cfg.MailTransport)
	assert.Equal(t, "no-reply@yourdomain.com", cfg.FromEmail)
	assert.Equal(t, 25, cfg.SMTPPort)
	assert.Equal(t, 10*time.Second, cfg.MailTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", StoreRedis)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAIL_TIMEOUT", "2s")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Second, cfg.MailTimeout)
	assert.Equal(t, 25, cfg.SMTPPort)
}

func TestValidate(t *testing.T) {
	valid := Config{ClientSecret: "s", StoreBackend: StoreMemory, MailTransport: MailLog}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.ClientSecret = "" }, "CLIENT_SECRET"},
		{"mongo without uri", func(c *Config) { c.StoreBackend = StoreMongo }, "MONGODB_URI"},
		{"redis without addr", func(c *Config) { c.StoreBackend = StoreRedis }, "REDIS_ADDR"},
		{"unknown store", func(c *Config) { c.StoreBackend = "etcd" }, "STORE_BACKEND"},
		{"resend without key", func(c *Config) { c.MailTransport = MailResend }, "RESEND_API_KEY"},
		{"sendgrid without key", func(c *Config) { c.MailTransport = MailSendGrid }, "SENDGRID_API_KEY"},
		{"unknown transport", func(c *Config) { c.MailTransport = "pigeon" }, "MAIL_TRANSPORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
