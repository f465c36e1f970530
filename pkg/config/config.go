package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type TransportConfig struct {
	Type string     `mapstructure:"type"` // "stdio" or "sse"
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig controls cross-origin access for the SSE transport.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // "gemini" or "anthropic"
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

type ObjectStorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type ProvisioningConfig struct {
	Region        string              `mapstructure:"region"`
	Simulate      bool                `mapstructure:"simulate"`
	Timeout       time.Duration       `mapstructure:"timeout"`
	ObjectStorage ObjectStorageConfig `mapstructure:"object_storage"`
}

type ServerConfig struct {
	Transport     TransportConfig    `mapstructure:"transport"`
	LogLevel      string             `mapstructure:"log_level"`
	LogFormat     string             `mapstructure:"log_format"`
	HistoryWindow int                `mapstructure:"history_window"`
	LLM           LLMConfig          `mapstructure:"llm"`
	Provisioning  ProvisioningConfig `mapstructure:"provisioning"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Transport: TransportConfig{
			Type: "stdio",
			Host: "localhost",
			Port: 8080,
			CORS: CORSConfig{
				Enabled:        false,
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
				MaxAge:         3600,
			},
		},
		LogLevel:      "info",
		LogFormat:     "json",
		HistoryWindow: 12,
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Provisioning: ProvisioningConfig{
			Region:   "us-east-1",
			Simulate: true,
			Timeout:  30 * time.Second,
		},
	}
}

func LoadConfig() (*ServerConfig, error) {
	config := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/cloudpilot/")
	viper.AddConfigPath("$HOME/.cloudpilot/")

	viper.SetEnvPrefix("CLOUDPILOT")
	viper.AutomaticEnv()

	// Transport defaults
	viper.SetDefault("transport.type", config.Transport.Type)
	viper.SetDefault("transport.host", config.Transport.Host)
	viper.SetDefault("transport.port", config.Transport.Port)
	viper.SetDefault("transport.cors.enabled", config.Transport.CORS.Enabled)
	viper.SetDefault("transport.cors.allowed_origins", config.Transport.CORS.AllowedOrigins)
	viper.SetDefault("transport.cors.allowed_methods", config.Transport.CORS.AllowedMethods)
	viper.SetDefault("transport.cors.allowed_headers", config.Transport.CORS.AllowedHeaders)
	viper.SetDefault("transport.cors.max_age", config.Transport.CORS.MaxAge)

	// Logging defaults
	viper.SetDefault("log_level", config.LogLevel)
	viper.SetDefault("log_format", config.LogFormat)
	viper.SetDefault("history_window", config.HistoryWindow)

	// LLM defaults
	viper.SetDefault("llm.provider", config.LLM.Provider)
	viper.SetDefault("llm.model", config.LLM.Model)
	viper.SetDefault("llm.timeout", config.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", config.LLM.MaxTokens)
	viper.SetDefault("llm.temperature", config.LLM.Temperature)

	// Provisioning defaults
	viper.SetDefault("provisioning.region", config.Provisioning.Region)
	viper.SetDefault("provisioning.simulate", config.Provisioning.Simulate)
	viper.SetDefault("provisioning.timeout", config.Provisioning.Timeout)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func validateConfig(config *ServerConfig) error {
	switch config.Transport.Type {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid transport type: %s", config.Transport.Type)
	}

	if config.Transport.Port <= 0 || config.Transport.Port > 65535 {
		return fmt.Errorf("the port must be between 1 and 65535")
	}

	switch config.LLM.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("invalid llm provider: %s", config.LLM.Provider)
	}

	// The API key is the one setting with no usable default; without it the
	// session cannot start at all.
	if config.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (set CLOUDPILOT_LLM_API_KEY or llm.api_key)")
	}

	if config.LLM.Timeout <= 0 {
		return fmt.Errorf("the llm timeout must be positive")
	}

	if config.HistoryWindow <= 0 {
		return fmt.Errorf("the history window must be positive")
	}

	if config.Provisioning.Timeout <= 0 {
		return fmt.Errorf("the provisioning timeout must be positive")
	}

	if !config.Provisioning.Simulate {
		if config.Provisioning.ObjectStorage.AccessKey == "" || config.Provisioning.ObjectStorage.SecretKey == "" {
			return fmt.Errorf("object storage credentials are required when simulation is disabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validLogFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validLogFormats[config.LogFormat] {
		return fmt.Errorf("invalid log format: %s", config.LogFormat)
	}

	return nil
}
