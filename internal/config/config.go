package config

import (
	"github.com/maxviazov/chat-endpoints/internal/logger"
)

type Config struct {
	App    AppConfig           `mapstructure:"app"`
	Logger logger.LoggerConfig `mapstructure:"logger"`
	API    APIConfig           `mapstructure:"api"`
	Proxy  ProxyConfig         `mapstructure:"proxy"`
}

type AppConfig struct {
	Name            string `mapstructure:"name" validate:"required"`
	Version         string `mapstructure:"version"`
	Env             string `mapstructure:"env" validate:"oneof=dev staging prod test"`
	Port            int    `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// APIConfig holds the chat backend address every route is built on.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url,startswith=http"`
}

// ProxyConfig mirrors the front-end dev server rule: requests under Prefix are
// forwarded to Target with Prefix stripped.
type ProxyConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Prefix       string `mapstructure:"prefix" validate:"omitempty,startswith=/"`
	Target       string `mapstructure:"target" validate:"omitempty,url,startswith=http"`
	ChangeOrigin bool   `mapstructure:"change_origin"`
	Timeout      int    `mapstructure:"timeout" validate:"min=0"`
}
