// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewerConfig holds the product and the rotation viewer settings.
type ViewerConfig struct {
	BaseURL        string        `yaml:"base_url"` // Product endpoint; frames live at <base_url>/frames/<n>/
	Frames         int           `yaml:"frames"`
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Title          string        `yaml:"title"`
	Caption        string        `yaml:"caption"`
	SampleInterval time.Duration `yaml:"sample_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultBaseURL is the product shown when nothing else is configured.
const DefaultBaseURL = "https://content.cylindo.com/api/v2/4404/products/ARCHIBALDCHAIR"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Spinview",
			Width:  800,
			Height: 680,
			VSync:  true,
		},
		Viewer: ViewerConfig{
			BaseURL:        DefaultBaseURL,
			Frames:         32,
			Width:          600,
			Height:         500,
			Title:          "Product Preview",
			Caption:        "Click and drag to rotate the product",
			SampleInterval: 30 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
