package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// SessionConfig configures the local browser-session store. Sessions map a
// cookie token to the backend tokens issued at sign-in.
type SessionConfig struct {
	ConnectionString string        `mapstructure:"connection_string"`
	TTL              time.Duration `mapstructure:"ttl"`
}

func (config SessionConfig) validate() error {

	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: session connection string")
	}

	if config.TTL <= 0 {
		return fmt.Errorf("session ttl must be greater than zero")
	}

	return nil
}

func (config SessionConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("session.connection_string", "SESSION_DB_CONNECTION_STRING"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("session.ttl", "SESSION_TTL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
