package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/ytplaylen/internal/domain/duration"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		YouTube: YouTubeConfig{
			APIKey:         "test-api-key",
			PageSize:       50,
			BatchSize:      50,
			MaxConcurrency: 4,
			RequestTimeout: 15 * time.Second,
			MaxAttempts:    3,
			RetryDelay:     time.Second,
		},
		Report: ReportConfig{Unit: "hrs", Speed: "1"},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestConfig_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing api key",
			modify:  func(c *Config) { c.YouTube.APIKey = "" },
			wantErr: true,
			errMsg:  "APIKey",
		},
		{
			name:    "page size above provider cap",
			modify:  func(c *Config) { c.YouTube.PageSize = 51 },
			wantErr: true,
			errMsg:  "PageSize",
		},
		{
			name:    "zero batch size",
			modify:  func(c *Config) { c.YouTube.BatchSize = 0 },
			wantErr: true,
			errMsg:  "BatchSize",
		},
		{
			name:    "invalid base url",
			modify:  func(c *Config) { c.YouTube.BaseURL = "not a url" },
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "unknown unit",
			modify:  func(c *Config) { c.Report.Unit = "days" },
			wantErr: true,
			errMsg:  "report.unit",
		},
		{
			name:    "unsupported speed",
			modify:  func(c *Config) { c.Report.Speed = "3" },
			wantErr: true,
			errMsg:  "report.speed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
youtube:
  api_key: from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "from-file", cfg.YouTube.APIKey)
	assert.Equal(t, 50, cfg.YouTube.PageSize)
	assert.Equal(t, 50, cfg.YouTube.BatchSize)
	assert.Equal(t, 4, cfg.YouTube.MaxConcurrency)
	assert.Equal(t, 15*time.Second, cfg.YouTube.RequestTimeout)
	assert.Equal(t, 3, cfg.YouTube.MaxAttempts)
	assert.Equal(t, time.Second, cfg.YouTube.RetryDelay)
	assert.False(t, cfg.YouTube.AllowPartialDetails)

	unit, err := cfg.ReportUnit()
	require.NoError(t, err)
	assert.Equal(t, duration.Hours, unit)
	speed, err := cfg.ReportSpeed()
	require.NoError(t, err)
	assert.Equal(t, duration.Normal, speed)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  addr: ":9090"
youtube:
  api_key: from-file
  base_url: http://localhost:8081/
  page_size: 20
  batch_size: 25
  max_concurrency: 2
  request_timeout: 5s
  retry_delay: 250ms
  allow_partial_details: true
report:
  unit: min
  speed: 1.5x
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8081/", cfg.YouTube.BaseURL)
	assert.Equal(t, 20, cfg.YouTube.PageSize)
	assert.Equal(t, 25, cfg.YouTube.BatchSize)
	assert.Equal(t, 2, cfg.YouTube.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.YouTube.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.YouTube.RetryDelay)
	assert.True(t, cfg.YouTube.AllowPartialDetails)

	speed, err := cfg.ReportSpeed()
	require.NoError(t, err)
	assert.Equal(t, duration.Speed(1.5), speed)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "from-env")
	t.Setenv("YTPLAYLEN_PAGE_SIZE", "10")
	t.Setenv("YTPLAYLEN_REQUEST_TIMEOUT", "3s")
	t.Setenv("YTPLAYLEN_MAX_ATTEMPTS", "5")
	t.Setenv("YTPLAYLEN_ALLOW_PARTIAL_DETAILS", "true")
	t.Setenv("YTPLAYLEN_REPORT_UNIT", "sec")

	path := writeConfig(t, `
youtube:
  api_key: from-file
  page_size: 40
  batch_size: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.YouTube.APIKey)
	assert.Equal(t, 10, cfg.YouTube.PageSize)
	assert.Equal(t, 30, cfg.YouTube.BatchSize, "file value kept when no env is set")
	assert.Equal(t, 3*time.Second, cfg.YouTube.RequestTimeout)
	assert.Equal(t, 5, cfg.YouTube.MaxAttempts)
	assert.True(t, cfg.YouTube.AllowPartialDetails)
	assert.Equal(t, "sec", cfg.Report.Unit)
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.YouTube.APIKey)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		errMsg  string
	}{
		{name: "missing api key", content: "server:\n  addr: \":8080\"\n", errMsg: "validation failed"},
		{name: "malformed yaml", content: "youtube: [", errMsg: "failed to parse config file"},
		{
			name:    "bad env number",
			content: "youtube:\n  api_key: k\n",
			env:     map[string]string{"YTPLAYLEN_PAGE_SIZE": "many"},
			errMsg:  "environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}
