package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	ErrInvalidTimeout = errors.New("timeout must be between 1 and 600 seconds")
	ErrInvalidRetries = errors.New("max retries must be between 0 and 10")
	ErrInvalidOutputs = errors.New("default num outputs must be between 1 and 4")
)

const appDirName = "pixeldojo"

type Config struct {
	API      APIConfig
	Log      LogConfig
	Defaults DefaultsConfig
	History  HistoryConfig
}

type APIConfig struct {
	Key               string
	BaseURL           string
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	MaxConnections    int
	RequestsPerMinute int // 0 disables the client-side limiter
}

type LogConfig struct {
	Level string
	Debug bool
}

type DefaultsConfig struct {
	Model       string
	AspectRatio string
	NumOutputs  int
	DownloadDir string
}

type HistoryConfig struct {
	Enabled    bool
	MaxEntries int
	Path       string
}

func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			Key:               os.Getenv("PIXELDOJO_API_KEY"),
			BaseURL:           getEnvOrDefault("PIXELDOJO_API_URL", "https://pixeldojo.ai/api/v1"),
			Timeout:           time.Duration(getEnvIntOrDefault("PIXELDOJO_TIMEOUT_SEC", 120)) * time.Second,
			MaxRetries:        getEnvIntOrDefault("PIXELDOJO_MAX_RETRIES", 3),
			RetryDelay:        time.Duration(getEnvIntOrDefault("PIXELDOJO_RETRY_DELAY_MS", 1000)) * time.Millisecond,
			MaxConnections:    getEnvIntOrDefault("PIXELDOJO_MAX_CONNECTIONS", 10),
			RequestsPerMinute: getEnvIntOrDefault("PIXELDOJO_RATE_LIMIT_PER_MINUTE", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			Debug: getEnvBoolOrDefault("PIXELDOJO_DEBUG", false),
		},
		Defaults: DefaultsConfig{
			Model:       getEnvOrDefault("PIXELDOJO_DEFAULT_MODEL", "flux-pro"),
			AspectRatio: getEnvOrDefault("PIXELDOJO_DEFAULT_ASPECT_RATIO", "1:1"),
			NumOutputs:  getEnvIntOrDefault("PIXELDOJO_DEFAULT_NUM_OUTPUTS", 1),
			DownloadDir: getEnvOrDefault("PIXELDOJO_DOWNLOAD_DIR", defaultDownloadDir()),
		},
		History: HistoryConfig{
			Enabled:    getEnvBoolOrDefault("PIXELDOJO_HISTORY_ENABLED", true),
			MaxEntries: getEnvIntOrDefault("PIXELDOJO_MAX_HISTORY", 1000),
			Path:       getEnvOrDefault("PIXELDOJO_HISTORY_PATH", defaultHistoryPath()),
		},
	}

	if cfg.Log.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.Timeout < time.Second || c.API.Timeout > 600*time.Second {
		return ErrInvalidTimeout
	}
	if c.API.MaxRetries < 0 || c.API.MaxRetries > 10 {
		return ErrInvalidRetries
	}
	if c.Defaults.NumOutputs < 1 || c.Defaults.NumOutputs > 4 {
		return ErrInvalidOutputs
	}
	return nil
}

// AppDir is the per-user directory for the key file and history.
func AppDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(base, appDirName)
}

func defaultHistoryPath() string {
	return filepath.Join(AppDir(), "history.json")
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pixeldojo-images"
	}
	return filepath.Join(home, "Pictures", "PixelDojo")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
