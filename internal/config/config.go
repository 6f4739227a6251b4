package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"PayFlow"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
		StaticDir string `envconfig:"STATIC_DIR" default:"./static"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"payflow"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"120s"`
	}

	Auth struct {
		PasswordSecret string        `envconfig:"AUTH_PASSWORD_SECRET" default:"PAYFLOW_PASSWORD"`
		JWTSecret      string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL       time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	Silae struct {
		AuthURL string        `envconfig:"SILAE_AUTH_URL" default:"https://payroll-api-auth.silae.fr/oauth2/v2.0/token"`
		APIURL  string        `envconfig:"SILAE_API_URL" default:"https://payroll-api.silae.fr"`
		Scope   string        `envconfig:"SILAE_SCOPE" default:"https://silaecloudb2c.onmicrosoft.com/36658aca-9556-41b7-9e48-77e90b006f34/.default"`
		Timeout time.Duration `envconfig:"SILAE_TIMEOUT" default:"60s"`
	}

	Odoo struct {
		Scheme  string        `envconfig:"ODOO_SCHEME" default:"https"`
		Timeout time.Duration `envconfig:"ODOO_TIMEOUT" default:"60s"`
	}

	SMTP struct {
		Host           string        `envconfig:"SMTP_HOST" default:"mail.infomaniak.com"`
		Port           int           `envconfig:"SMTP_PORT" default:"587"`
		Timeout        time.Duration `envconfig:"SMTP_TIMEOUT" default:"30s"`
		SenderSecret   string        `envconfig:"SMTP_SENDER_SECRET" default:"PAYFLOW_EMAIL_SENDER"`
		PasswordSecret string        `envconfig:"SMTP_PASSWORD_SECRET" default:"PAYFLOW_EMAIL_PASSWORD"`
	}

	Secrets struct {
		// Prefix is prepended to every secret name when reading the environment.
		Prefix        string `envconfig:"SECRETS_PREFIX" default:""`
		EncryptionKey string `envconfig:"SECRETS_ENCRYPTION_KEY" default:"PAYFLOW_ENCRYPTION_KEY"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
