package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// BackendConfig points at the hosted Supabase project that owns all
// profile, job and application data plus the resume bucket. ServiceKey must
// be a service-role key: table reads and writes bypass row-level security,
// and the server's own role guard is the authorization layer. Resume uploads
// still carry the caller's access token.
type BackendConfig struct {
	URL                      string  `mapstructure:"url"`
	ServiceKey               string  `mapstructure:"service_key"`
	ResumeBucket             string  `mapstructure:"resume_bucket"`
	StorageRequestsPerSecond float32 `mapstructure:"storage_requests_per_second"`
}

func (config BackendConfig) validate() error {

	var missingFields []string

	if config.URL == "" {
		missingFields = append(missingFields, "url")
	}

	if config.ServiceKey == "" {
		missingFields = append(missingFields, "service_key")
	}

	if config.ResumeBucket == "" {
		missingFields = append(missingFields, "resume_bucket")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config BackendConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("backend.url", "SUPABASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("backend.service_key", "SUPABASE_SERVICE_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("backend.resume_bucket", "RESUME_BUCKET"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
