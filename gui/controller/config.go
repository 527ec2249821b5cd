package controller

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "IconBanner"

// AppConfig holds the persisted application preferences. Icon paths and
// colours are session data and never written here.
type AppConfig struct {
	// Palette settings
	PaletteQuality  int `json:"palette_quality"`  // 1 = most accurate
	PaletteSwatches int `json:"palette_swatches"` // suggested colours shown in the window

	// Window settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		PaletteQuality:  1,
		PaletteSwatches: 5,

		WindowWidth:  520,
		WindowHeight: 640,
	}
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	return filepath.Join(configDir, appDirName)
}

// getConfigPath returns the full path to the config file
func getConfigPath() string {
	return filepath.Join(getConfigDir(), "config.json")
}

// LoadConfig loads configuration from disk or returns defaults
func LoadConfig() *AppConfig {
	config := DefaultConfig()

	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		return config
	}

	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}

	config.ValidateConfig()
	return config
}

// SaveConfig saves configuration to disk
func SaveConfig(config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(getConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(getConfigPath(), data, 0644)
}

// ValidateConfig normalizes configuration values into sensible ranges
func (c *AppConfig) ValidateConfig() {
	if c.PaletteQuality < 1 {
		c.PaletteQuality = 1
	}
	if c.PaletteQuality > 10 {
		c.PaletteQuality = 10
	}

	if c.PaletteSwatches < 0 {
		c.PaletteSwatches = 0
	}
	if c.PaletteSwatches > 8 {
		c.PaletteSwatches = 8
	}

	if c.WindowWidth < 400 {
		c.WindowWidth = 400
	}
	if c.WindowHeight < 480 {
		c.WindowHeight = 480
	}
}

// Clone creates a copy of the config
func (c *AppConfig) Clone() *AppConfig {
	clone := *c
	return &clone
}

// FormatFileSize formats bytes to a human readable string
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), []string{"KB", "MB", "GB", "TB"}[exp])
}
