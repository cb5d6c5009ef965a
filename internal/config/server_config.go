package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	CookieName     string `mapstructure:"cookie_name"`
	CookieSecure   bool   `mapstructure:"cookie_secure"`
}

func (config ServerConfig) validate() error {

	var missingFields []string

	if config.Address == "" {
		missingFields = append(missingFields, "address")
	}

	if config.CookieName == "" {
		missingFields = append(missingFields, "cookie_name")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("server.address", "SERVER_ADDRESS")
	if err != nil {
		return err
	}

	err = viper.BindEnv("server.metrics_address", "METRICS_ADDRESS")
	if err != nil {
		return err
	}

	return viper.BindEnv("server.cookie_name", "SESSION_COOKIE_NAME")
}
