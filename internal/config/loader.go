package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/chat-endpoints/internal/endpoints"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the loopback backend; the LAN backend goes in the config file.
const DefaultBaseURL = endpoints.DefaultBaseURL

// ReservedPaths are served by the process itself; the proxy prefix may not shadow them.
var ReservedPaths = []string{"/live", "/ready", "/routes", "/metrics"}

// Load reads path (if non-empty) and APP_* environment overrides on top of defaults,
// then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// proxy target follows the API base unless set explicitly
	if config.Proxy.Target == "" {
		config.Proxy.Target = config.API.BaseURL
	}
	if config.Logger.Env == "" {
		config.Logger.Env = config.App.Env
	}
	if config.Logger.ServiceName == "" {
		config.Logger.ServiceName = config.App.Name
	}
	if config.Logger.ServiceVersion == "" {
		config.Logger.ServiceVersion = config.App.Version
	}
	config.Proxy.Prefix = strings.TrimRight(config.Proxy.Prefix, "/")
	if config.Proxy.Enabled {
		if err := checkPrefix(config.Proxy.Prefix); err != nil {
			return nil, fmt.Errorf("config validation error: %w", err)
		}
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

// checkPrefix rejects a proxy prefix that is root or whose first segment is a reserved path.
func checkPrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("proxy.prefix must not be root")
	}
	first := prefix
	if i := strings.Index(prefix[1:], "/"); i >= 0 {
		first = prefix[:i+1]
	}
	for _, p := range ReservedPaths {
		if first == p {
			return fmt.Errorf("proxy.prefix %q clashes with built-in route %s", prefix, p)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "chat-endpoints")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10)

	// every logger key is registered so AutomaticEnv can bind APP_LOGGER_* during Unmarshal;
	// empty values fall through to the logger's own defaults
	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output_target", "")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.time_field", "")
	v.SetDefault("logger.time_format", "")
	v.SetDefault("logger.service_name", "")
	v.SetDefault("logger.service_version", "")
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.with_caller", false)
	v.SetDefault("logger.stacktrace", false)

	v.SetDefault("api.base_url", DefaultBaseURL)

	v.SetDefault("proxy.enabled", true)
	v.SetDefault("proxy.prefix", "/api")
	v.SetDefault("proxy.target", "")
	v.SetDefault("proxy.change_origin", true)
	v.SetDefault("proxy.timeout", 30)
}
