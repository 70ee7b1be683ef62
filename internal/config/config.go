// Package config loads swatch configuration from defaults, an optional
// config file, SWATCH_* environment variables and command-line flags.
package config

import (
	"time"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Config holds all application configuration.
type Config struct {
	Log       LogConfig              `mapstructure:"log" validate:"required"`
	Extract   colour.ExtractorConfig `mapstructure:"extract" validate:"required"`
	Fetch     FetchConfig            `mapstructure:"fetch" validate:"required"`
	Server    ServerConfig           `mapstructure:"server" validate:"required"`
	Templates TemplatesConfig        `mapstructure:"templates"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error off"`
	JSON  bool   `mapstructure:"json"`
}

// FetchConfig bounds remote image downloads. MaxPixels applies to the area
// declared in the image header, before the pixel data is decoded.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxBytes  int64         `mapstructure:"max_bytes" validate:"gt=0"`
	MaxPixels int64         `mapstructure:"max_pixels" validate:"gt=0"`
}

// ServerConfig contains the HTTP API settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
	MaxPixels       int64         `mapstructure:"max_pixels" validate:"gt=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// TemplatesConfig locates user export templates.
type TemplatesConfig struct {
	// Dir holds custom templates. Empty means $XDG_CONFIG_HOME/swatch/templates.
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Extract: colour.DefaultExtractorConfig(),
		Fetch: FetchConfig{
			Timeout:   10 * time.Second,
			MaxBytes:  32 << 20,
			MaxPixels: 40_000_000,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadBytes:  20 << 20,
			MaxPixels:       25_000_000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
