// Package config loads application configuration from a JSON config file
// and VIBESPECS_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GatewayConfig configures the generation gateway client.
type GatewayConfig struct {
	APIKey           string `json:"apiKey"`
	BaseURL          string `json:"baseURL"`
	Model            string `json:"model"`
	RequestTimeoutMs int    `json:"requestTimeoutMs"`
}

// ServerConfig configures the REST API server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// DatabaseConfig configures the Postgres row store. An empty URL disables
// persistence; generation and export still work without it.
type DatabaseConfig struct {
	URL string `json:"url"`
}

// Config is the main configuration structure for the application.
type Config struct {
	Gateway  GatewayConfig  `json:"gateway"`
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Debug    bool           `json:"debug,omitempty"`
}

const (
	appName          = "vibespecs"
	defaultBaseURL   = "https://ai.gateway.lovable.dev/v1"
	defaultModel     = "google/gemini-2.5-flash"
	defaultAddr      = ":8080"
	defaultTimeoutMs = 60000
)

// Load initializes the configuration from config files and environment
// variables.
func Load(debug bool) (*Config, error) {
	configureViper()
	setDefaults(debug)

	if err := readConfig(viper.ReadInConfig()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	loadFromEnv(cfg)
	return cfg, nil
}

// configureViper sets up viper's configuration paths and env bindings.
func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(debug bool) {
	viper.SetDefault("gateway.baseURL", defaultBaseURL)
	viper.SetDefault("gateway.model", defaultModel)
	viper.SetDefault("gateway.requestTimeoutMs", defaultTimeoutMs)
	viper.SetDefault("server.addr", defaultAddr)
	viper.SetDefault("database.url", "")
	viper.SetDefault("debug", debug)
}

// readConfig tolerates a missing config file; any other read error is
// surfaced.
func readConfig(err error) error {
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// loadFromEnv fills credentials from well-known environment variables
// when the config file left them empty.
func loadFromEnv(cfg *Config) {
	if cfg.Gateway.APIKey == "" {
		for _, envVar := range []string{"VIBESPECS_GATEWAY_API_KEY", "LOVABLE_API_KEY"} {
			if key := os.Getenv(envVar); key != "" {
				cfg.Gateway.APIKey = key
				break
			}
		}
	}
	if cfg.Database.URL == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.Database.URL = url
		}
	}
}
