package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "AGENDA"
	defaultHTTPAddress  = "0.0.0.0:8080"
	defaultDatabasePath = "agenda.db"
	defaultLogLevel     = "info"
	defaultClientMode   = "remote"
	defaultClientData   = "agenda-events.json"
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress  string
	DatabasePath string
	LogLevel     string
}

// ClientConfig selects and parameterizes the client-side persistence backend.
type ClientConfig struct {
	// Mode is either "remote" (JSON over HTTP against the API) or "local"
	// (file-backed, no server required).
	Mode     string
	BaseURL  string
	DataPath string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("client.mode", defaultClientMode)
	configViper.SetDefault("client.base_url", "")
	configViper.SetDefault("client.data_path", defaultClientData)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:  configViper.GetString("http.address"),
		DatabasePath: configViper.GetString("database.path"),
		LogLevel:     configViper.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// LoadClient parses the client backend selection from viper.
func LoadClient(configViper *viper.Viper) (ClientConfig, error) {
	cfg := ClientConfig{
		Mode:     strings.ToLower(strings.TrimSpace(configViper.GetString("client.mode"))),
		BaseURL:  configViper.GetString("client.base_url"),
		DataPath: configViper.GetString("client.data_path"),
	}

	switch cfg.Mode {
	case "remote":
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return ClientConfig{}, fmt.Errorf("client.base_url is required in remote mode")
		}
	case "local":
		if strings.TrimSpace(cfg.DataPath) == "" {
			return ClientConfig{}, fmt.Errorf("client.data_path is required in local mode")
		}
	default:
		return ClientConfig{}, fmt.Errorf("client.mode must be remote or local, got %q", cfg.Mode)
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return fmt.Errorf("http.address is required")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}
