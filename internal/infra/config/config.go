// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/osa030/ytplaylen/internal/domain/duration"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	YouTube YouTubeConfig `yaml:"youtube" mapstructure:"youtube"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" default:"10s"`
}

// YouTubeConfig represents YouTube Data API configuration.
type YouTubeConfig struct {
	APIKey              string        `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	BaseURL             string        `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	PageSize            int           `yaml:"page_size" mapstructure:"page_size" default:"50" validate:"gte=1,lte=50"`
	BatchSize           int           `yaml:"batch_size" mapstructure:"batch_size" default:"50" validate:"gte=1,lte=50"`
	MaxConcurrency      int           `yaml:"max_concurrency" mapstructure:"max_concurrency" default:"4" validate:"gte=1,lte=32"`
	RequestTimeout      time.Duration `yaml:"request_timeout" mapstructure:"request_timeout" default:"15s" validate:"gt=0"`
	MaxAttempts         int           `yaml:"max_attempts" mapstructure:"max_attempts" default:"3" validate:"gte=1,lte=10"`
	RetryDelay          time.Duration `yaml:"retry_delay" mapstructure:"retry_delay" default:"1s" validate:"gt=0"`
	AllowPartialDetails bool          `yaml:"allow_partial_details" mapstructure:"allow_partial_details"`
}

// ReportConfig represents the default rendering of reports.
type ReportConfig struct {
	Unit  string `yaml:"unit" mapstructure:"unit" default:"hrs"`
	Speed string `yaml:"speed" mapstructure:"speed" default:"1"`
}

// envBindings maps environment variables to dotted config keys.
var envBindings = map[string]string{
	"YOUTUBE_API_KEY":                 "youtube.api_key",
	"YTPLAYLEN_SERVER_ADDR":           "server.addr",
	"YTPLAYLEN_YOUTUBE_BASE_URL":      "youtube.base_url",
	"YTPLAYLEN_PAGE_SIZE":             "youtube.page_size",
	"YTPLAYLEN_BATCH_SIZE":            "youtube.batch_size",
	"YTPLAYLEN_MAX_CONCURRENCY":       "youtube.max_concurrency",
	"YTPLAYLEN_REQUEST_TIMEOUT":       "youtube.request_timeout",
	"YTPLAYLEN_MAX_ATTEMPTS":          "youtube.max_attempts",
	"YTPLAYLEN_RETRY_DELAY":           "youtube.retry_delay",
	"YTPLAYLEN_ALLOW_PARTIAL_DETAILS": "youtube.allow_partial_details",
	"YTPLAYLEN_REPORT_UNIT":           "report.unit",
	"YTPLAYLEN_REPORT_SPEED":          "report.speed",
}

// Load loads configuration from a YAML file.
// An empty path skips the file and builds the configuration from the environment.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	if err := cfg.overrideFromEnv(os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "failed to apply environment overrides")
	}

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv decodes the bound environment variables over c.
func (c *Config) overrideFromEnv(lookup func(string) (string, bool)) error {
	overrides := map[string]any{}
	for env, key := range envBindings {
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		section, field, _ := strings.Cut(key, ".")
		m, ok := overrides[section].(map[string]any)
		if !ok {
			m = map[string]any{}
			overrides[section] = m
		}
		m[field] = v
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(overrides); err != nil {
		return errors.Wrap(err, "failed to decode environment")
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	if _, err := c.ReportUnit(); err != nil {
		return err
	}
	if _, err := c.ReportSpeed(); err != nil {
		return err
	}
	return nil
}

// ReportUnit returns the configured default display unit.
func (c *Config) ReportUnit() (duration.Unit, error) {
	u, err := duration.ParseUnit(c.Report.Unit)
	if err != nil {
		return "", errors.Wrap(err, "invalid report.unit")
	}
	return u, nil
}

// ReportSpeed returns the configured default playback speed.
func (c *Config) ReportSpeed() (duration.Speed, error) {
	s, err := duration.ParseSpeed(c.Report.Speed)
	if err != nil {
		return 0, errors.Wrap(err, "invalid report.speed")
	}
	return s, nil
}
