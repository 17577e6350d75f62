package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://pixeldojo.ai/api/v1" {
		t.Errorf("API.BaseURL = %v, want https://pixeldojo.ai/api/v1", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 120*time.Second {
		t.Errorf("API.Timeout = %v, want 120s", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != 3 {
		t.Errorf("API.MaxRetries = %v, want 3", cfg.API.MaxRetries)
	}
	if cfg.API.RetryDelay != time.Second {
		t.Errorf("API.RetryDelay = %v, want 1s", cfg.API.RetryDelay)
	}
	if cfg.API.MaxConnections != 10 {
		t.Errorf("API.MaxConnections = %v, want 10", cfg.API.MaxConnections)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", cfg.Log.Level)
	}
	if cfg.Defaults.Model != "flux-pro" {
		t.Errorf("Defaults.Model = %v, want flux-pro", cfg.Defaults.Model)
	}
	if cfg.Defaults.AspectRatio != "1:1" {
		t.Errorf("Defaults.AspectRatio = %v, want 1:1", cfg.Defaults.AspectRatio)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("History.MaxEntries = %v, want 1000", cfg.History.MaxEntries)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("PIXELDOJO_API_KEY", "pd-test-key")
	os.Setenv("PIXELDOJO_API_URL", "https://staging.pixeldojo.ai/api/v1")
	os.Setenv("PIXELDOJO_TIMEOUT_SEC", "30")
	os.Setenv("PIXELDOJO_MAX_RETRIES", "5")
	os.Setenv("PIXELDOJO_RETRY_DELAY_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Key != "pd-test-key" {
		t.Errorf("API.Key = %v, want pd-test-key", cfg.API.Key)
	}
	if cfg.API.BaseURL != "https://staging.pixeldojo.ai/api/v1" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != 5 {
		t.Errorf("API.MaxRetries = %v, want 5", cfg.API.MaxRetries)
	}
	if cfg.API.RetryDelay != 250*time.Millisecond {
		t.Errorf("API.RetryDelay = %v, want 250ms", cfg.API.RetryDelay)
	}
}

func TestLoad_DebugForcesDebugLevel(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("PIXELDOJO_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %v, want debug", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name:    "timeout too small",
			envVars: map[string]string{"PIXELDOJO_TIMEOUT_SEC": "0"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "timeout too large",
			envVars: map[string]string{"PIXELDOJO_TIMEOUT_SEC": "601"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative retries",
			envVars: map[string]string{"PIXELDOJO_MAX_RETRIES": "-1"},
			wantErr: ErrInvalidRetries,
		},
		{
			name:    "too many retries",
			envVars: map[string]string{"PIXELDOJO_MAX_RETRIES": "11"},
			wantErr: ErrInvalidRetries,
		},
		{
			name:    "outputs out of range",
			envVars: map[string]string{"PIXELDOJO_DEFAULT_NUM_OUTPUTS": "5"},
			wantErr: ErrInvalidOutputs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			defer clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := Load()
			if err != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal bool
		want       bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"false", "false", true, false},
		{"empty keeps default", "", true, true},
		{"garbage keeps default", "yep", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_BOOL", tt.envValue)
			defer os.Unsetenv("TEST_BOOL")

			got := getEnvBoolOrDefault("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBoolOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func clearEnvVars() {
	envVars := []string{
		"PIXELDOJO_API_KEY",
		"PIXELDOJO_API_URL",
		"PIXELDOJO_TIMEOUT_SEC",
		"PIXELDOJO_MAX_RETRIES",
		"PIXELDOJO_RETRY_DELAY_MS",
		"PIXELDOJO_MAX_CONNECTIONS",
		"PIXELDOJO_RATE_LIMIT_PER_MINUTE",
		"PIXELDOJO_DEBUG",
		"LOG_LEVEL",
		"PIXELDOJO_DEFAULT_MODEL",
		"PIXELDOJO_DEFAULT_ASPECT_RATIO",
		"PIXELDOJO_DEFAULT_NUM_OUTPUTS",
		"PIXELDOJO_DOWNLOAD_DIR",
		"PIXELDOJO_HISTORY_ENABLED",
		"PIXELDOJO_MAX_HISTORY",
		"PIXELDOJO_HISTORY_PATH",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
