package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment variable the service reads,
// e.g. INVENTORY_SERVER_PORT sets server.port.
const EnvPrefix = "INVENTORY_"

type Config struct {
	Server ServerConfig `koanf:"server"`
	OTLP   OTLPConfig   `koanf:"otlp"`
	Log    LogConfig    `koanf:"log"`
	Demo   DemoConfig   `koanf:"demo"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port" validate:"required,numeric"`
	// DurationMS adds a millisecond request duration histogram.
	DurationMS bool `koanf:"durationms"`
}

type OTLPConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint" validate:"required_if=Enabled true"`
	ServiceName string `koanf:"servicename" validate:"required"`
	Environment string `koanf:"environment"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn warning error"`
}

type DemoConfig struct {
	// Seed runs the demo walkthrough once at startup.
	Seed bool `koanf:"seed"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":       "0.0.0.0",
		"server.port":       "8080",
		"server.durationms": false,
		"otlp.enabled":      false,
		"otlp.endpoint":     "localhost:4317",
		"otlp.servicename":  "store-inventory-api",
		"otlp.environment":  "development",
		"log.level":         "info",
		"demo.seed":         false,
	}
}

// LoadConfig loads configuration from config.yaml (or INVENTORY_CONFIG_FILE),
// .env and the environment, in increasing priority.
func LoadConfig() (*Config, error) {
	configFile := os.Getenv(EnvPrefix + "CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	return Load(configFile, ".env")
}

// Load layers defaults, the YAML file, the dotenv file and the process
// environment. Missing files are skipped.
func Load(configFile, envFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	envFileMap, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		dotenv := make(map[string]any, len(envFileMap))
		for key, value := range envFileMap {
			if strings.HasPrefix(key, EnvPrefix) {
				dotenv[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the struct rules on the loaded configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}
