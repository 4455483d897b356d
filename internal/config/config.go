package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task dashboard client
type Config struct {
	Server      ServerConfig
	Session     SessionConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// ServerConfig holds backend connection configuration
type ServerConfig struct {
	BaseURL        string        `env:"TD_SERVER_URL"`
	RequestTimeout time.Duration `env:"TD_SERVER_REQUEST_TIMEOUT"`
}

// SessionConfig holds local session store configuration
type SessionConfig struct {
	Dir            string `env:"TD_SESSION_DIR"`
	Filename       string `env:"TD_SESSION_FILENAME"`
	DirPermissions uint32 `env:"TD_SESSION_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `env:"TD_TIME_DISPLAY_FORMAT"`
	DateOnly      bool   `env:"TD_DISPLAY_DATE_ONLY"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength    int `env:"TD_VALIDATION_TITLE_MIN"`
	TitleMaxLength    int `env:"TD_VALIDATION_TITLE_MAX"`
	PasswordMinLength int `env:"TD_VALIDATION_PASSWORD_MIN"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TD_APP_TIMEOUT"`
	Verbose bool          `env:"TD_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultSessionDir := filepath.Join(homeDir, ".td")

	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Dir:            defaultSessionDir,
			Filename:       "session.db",
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04:05",
			DateOnly:      false,
		},
		Validation: ValidationConfig{
			TitleMinLength:    1,
			TitleMaxLength:    255,
			PasswordMinLength: 8,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetSessionStorePath returns the full path to the session store file
func (c *Config) GetSessionStorePath() string {
	return filepath.Join(c.Session.Dir, c.Session.Filename)
}

// GetRequestTimeout returns the per-request timeout for backend calls
func (c *Config) GetRequestTimeout() time.Duration {
	return c.Server.RequestTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if url := os.Getenv("TD_SERVER_URL"); url != "" {
		c.Server.BaseURL = url
	}
	if timeout := os.Getenv("TD_SERVER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.RequestTimeout = d
		}
	}

	// Session configuration
	if dir := os.Getenv("TD_SESSION_DIR"); dir != "" {
		c.Session.Dir = dir
	}
	if filename := os.Getenv("TD_SESSION_FILENAME"); filename != "" {
		c.Session.Filename = filename
	}
	if perms := os.Getenv("TD_SESSION_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Session.DirPermissions = uint32(p)
		}
	}

	// Time configuration
	if format := os.Getenv("TD_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}
	if dateOnly := os.Getenv("TD_DISPLAY_DATE_ONLY"); dateOnly != "" {
		if b, err := strconv.ParseBool(dateOnly); err == nil {
			c.Time.DateOnly = b
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TD_VALIDATION_TITLE_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TitleMinLength = n
		}
	}
	if maxLen := os.Getenv("TD_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}
	if minLen := os.Getenv("TD_VALIDATION_PASSWORD_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.PasswordMinLength = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("TD_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TD_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.BaseURL == "" {
		return &ConfigError{Field: "server.base_url", Message: "server base URL cannot be empty"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate session configuration
	if c.Session.Dir == "" {
		return &ConfigError{Field: "session.dir", Message: "session directory cannot be empty"}
	}
	if c.Session.Filename == "" {
		return &ConfigError{Field: "session.filename", Message: "session filename cannot be empty"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.PasswordMinLength < 1 {
		return &ConfigError{Field: "validation.password_min_length", Message: "password minimum length must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
