package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is centralized process configuration. Keep infra values here and
// pass typed config into builders.
type Config struct {
	ServiceName string `koanf:"service_name"`
	HTTPPort    string `koanf:"http_port"`
	PostgresDSN string `koanf:"postgres_dsn"`
	AdminEmail  string `koanf:"admin_email"`
	LogLevel    string `koanf:"log_level"`
}

// New returns the defaults every other layer overrides.
func New() *Config {
	return &Config{
		ServiceName: "postmatch",
		HTTPPort:    "8080",
		LogLevel:    "info",
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if POSTMATCH_CONFIG is set
//  3. env (prefix POSTMATCH_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("POSTMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// POSTMATCH_HTTP_PORT -> http_port, matching the koanf tags above.
	envProvider := env.Provider("POSTMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "postmatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTPPort) == "" {
		return nil, errors.New("http_port must not be empty")
	}
	return &cfg, nil
}
