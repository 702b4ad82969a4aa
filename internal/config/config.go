package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// LivingApps holds the remote record store coordinates. The app IDs
	// identify the five hosted collections; they are configuration, not
	// constants baked into the access layer.
	LivingApps struct {
		BaseURL        string `yaml:"base_url" env:"LIVINGAPPS_BASE_URL"`
		RequestTimeout string `yaml:"request_timeout" env:"LIVINGAPPS_REQUEST_TIMEOUT"`

		Apps struct {
			Dozenten    string `yaml:"dozenten" env:"LIVINGAPPS_APP_DOZENTEN"`
			Raeume      string `yaml:"raeume" env:"LIVINGAPPS_APP_RAEUME"`
			Teilnehmer  string `yaml:"teilnehmer" env:"LIVINGAPPS_APP_TEILNEHMER"`
			Kurse       string `yaml:"kurse" env:"LIVINGAPPS_APP_KURSE"`
			Anmeldungen string `yaml:"anmeldungen" env:"LIVINGAPPS_APP_ANMELDUNGEN"`
		} `yaml:"apps"`
	} `yaml:"livingapps"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; defaults plus env vars are enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.LivingApps.BaseURL = "https://my.living-apps.de/rest"
	config.LivingApps.RequestTimeout = "30s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.LivingApps.BaseURL) == "" {
		return fmt.Errorf("livingapps base URL is required")
	}

	if _, err := time.ParseDuration(config.LivingApps.RequestTimeout); err != nil {
		return fmt.Errorf("invalid livingapps request timeout format: %w", err)
	}

	for name, id := range appIDMap(config) {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("livingapps app ID for %s is required", name)
		}
	}

	return nil
}

func appIDMap(c *Config) map[string]string {
	return map[string]string{
		"dozenten":    c.LivingApps.Apps.Dozenten,
		"raeume":      c.LivingApps.Apps.Raeume,
		"teilnehmer":  c.LivingApps.Apps.Teilnehmer,
		"kurse":       c.LivingApps.Apps.Kurse,
		"anmeldungen": c.LivingApps.Apps.Anmeldungen,
	}
}

// AppIDs returns the remote collection identifiers keyed by resource kind key.
func (c *Config) AppIDs() map[string]string {
	return appIDMap(c)
}

// RequestTimeoutDuration returns the parsed record store request timeout.
// Validation guarantees the format; a zero fallback keeps callers safe if
// the config was built by hand.
func (c *Config) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.LivingApps.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
