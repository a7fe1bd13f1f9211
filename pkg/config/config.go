/*
Package config loads server configuration from the environment.

PURPOSE:
  All runtime knobs for the quoting server come from PROCURE_* env
  vars, parsed with envconfig. A .env file, when present, is loaded by
  cmd/server before this runs; nothing here reads files.

SEE ALSO:
  - cmd/server/main.go: godotenv loading and flag overrides
  - pkg/logger: consumes App.LogLevel
*/
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable this package reads.
const EnvPrefix = "PROCURE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	DB     DBConfig
	Engine EngineConfig
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"PROCURE_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"PROCURE_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	Port        string `envconfig:"PROCURE_HTTP_PORT" default:"8080"`
	CORSOrigins string `envconfig:"PROCURE_CORS_ORIGINS" default:"*"`
}

// Origins splits the comma-separated CORS origin list.
func (h HTTPConfig) Origins() []string {
	parts := strings.Split(h.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type DBConfig struct {
	Path string `envconfig:"PROCURE_DB_PATH" default:"./data/procurement.db"`
}

type EngineConfig struct {
	// TuningPath points at an optional JSON tuning document parsed by
	// the factory package. Empty means engine defaults.
	TuningPath string `envconfig:"PROCURE_ENGINE_TUNING_PATH"`
	Seed       bool   `envconfig:"PROCURE_SEED_ON_START" default:"false"`
}
