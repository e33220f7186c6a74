package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/woo-analytics/internal/api/http"
	"github.com/jekabolt/woo-analytics/internal/dashboard"
	"github.com/jekabolt/woo-analytics/internal/woo"
	"github.com/jekabolt/woo-analytics/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Woo       woo.Config       `mapstructure:"woo"`
	Dashboard dashboard.Config `mapstructure:"dashboard"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g. WOO__BASE_URL for
// woo.base_url.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	// Config file is optional - the service can run on env vars alone.
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/woo-analytics")
		viper.AddConfigPath("/etc/woo-analytics")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.Woo.BaseURL == "" {
		return nil, fmt.Errorf("woo.base_url is required")
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to nested config keys.
func bindEnvVars() {
	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// WooCommerce store
	viper.BindEnv("woo.base_url", "WOO_BASE_URL")
	viper.BindEnv("woo.consumer_key", "WOO_CONSUMER_KEY")
	viper.BindEnv("woo.consumer_secret", "WOO_CONSUMER_SECRET")
	viper.BindEnv("woo.timeout", "WOO_TIMEOUT")

	// Dashboard
	viper.BindEnv("dashboard.top_products_limit", "DASHBOARD_TOP_PRODUCTS_LIMIT")
	viper.BindEnv("dashboard.recent_orders_limit", "DASHBOARD_RECENT_ORDERS_LIMIT")
}
