// Package config arma la configuración del servicio:
// defaults -> YAML opcional (FT_CONFIG) -> variables de entorno FT_*.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

var ErrMissingAPIKey = errors.New("missing completion api key")

type Config struct {
	Addr string `koanf:"addr"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	AppName   string `koanf:"app_name"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// Servicio de completado de texto.
	Provider         string        `koanf:"completion_provider"`
	APIKey           string        `koanf:"api_key"`
	APIBaseURL       string        `koanf:"api_base_url"`
	Model            string        `koanf:"model"`
	Temperature      float64       `koanf:"temperature"`
	RequestTimeout   time.Duration `koanf:"request_timeout"`
	VerifyCredential bool          `koanf:"verify_credential"`

	// Análisis.
	MinEvents     int  `koanf:"min_events"`
	IncludePrompt bool `koanf:"include_prompt"`

	// Almacenamiento de sesiones.
	Storage    string        `koanf:"storage"`
	RedisURL   string        `koanf:"redis_url"`
	DBDSN      string        `koanf:"db_dsn"`
	SessionTTL time.Duration `koanf:"session_ttl"`

	MetricsEnabled bool `koanf:"metrics_enabled"`
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// New devuelve la configuración por defecto.
func New() *Config {
	return &Config{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "text",
		AppName:          "futbol-tracker",
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     90 * time.Second,
		Provider:         ProviderGemini,
		RequestTimeout:   60 * time.Second,
		VerifyCredential: true,
		MinEvents:        1,
		Storage:          StorageMemory,
		SessionTTL:       12 * time.Hour,
		MetricsEnabled:   true,
		SwaggerEnabled:   true,
	}
}

// Validate junta todos los problemas en un solo error.
// Falta de API key se reporta como ErrMissingAPIKey (condición fatal de arranque).
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}

	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unknown completion_provider %q", c.Provider))
	}

	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			errs = append(errs, errors.New("redis_url is required for storage=redis"))
		}
	case StoragePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			errs = append(errs, errors.New("db_dsn is required for storage=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}

	if c.MinEvents < 1 {
		errs = append(errs, errors.New("min_events must be >= 1"))
	}

	return errors.Join(errs...)
}
