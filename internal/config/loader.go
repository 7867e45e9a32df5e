package config

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FT_"

// Load aplica, de menor a mayor precedencia:
//  1. defaults (New)
//  2. archivo YAML si FT_CONFIG está definido
//  3. variables FT_* (FT_API_KEY -> api_key)
//
// Antes intenta cargar .env (si no existe, se ignora). Si api_key queda vacío se
// acepta GOOGLE_API_KEY / OPENAI_API_KEY según el proveedor.
// Load no valida; eso es Validate.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("FT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	if strings.TrimSpace(cfg.APIKey) == "" {
		switch cfg.Provider {
		case ProviderGemini:
			cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
		case ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return &cfg, nil
}
