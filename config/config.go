package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

type ExportConfig struct {
	BrowserPath     string  `toml:"browser_path"` // Empty uses the chromedp default lookup
	Headless        bool    `toml:"headless"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	RasterScale     float64 `toml:"raster_scale"` // Device pixel ratio used for the capture
	PageSize        string  `toml:"page_size"`
	MarginMM        float64 `toml:"margin_mm"`
	MaxRasterWidth  uint    `toml:"max_raster_width"` // 0 keeps the captured width
	CacheTTLSeconds int     `toml:"cache_ttl_seconds"`
	RateLimit       int     `toml:"rate_limit"` // Export requests per minute per client
}

type LogConfig struct {
	Level string `toml:"level"`
	Human bool   `toml:"human"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var config Config

	config.Server.Host = "127.0.0.1"
	config.Server.Port = 3000

	config.Storage.DataDir = "./data"

	config.Export.Headless = true
	config.Export.TimeoutSeconds = 30
	config.Export.RasterScale = 4
	config.Export.PageSize = "A4"
	config.Export.MarginMM = 10
	config.Export.CacheTTLSeconds = 600
	config.Export.RateLimit = 20

	config.Log.Level = "info"
	config.Log.Human = true

	return &config
}

// LoadConfig reads a TOML file over the defaults. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	_, err := toml.DecodeFile(filepath, config)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return config, nil
}

// Validate checks the values the export pipeline depends on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage data_dir is required")
	}
	if c.Export.RasterScale < 1 || c.Export.RasterScale > 8 {
		return fmt.Errorf("export raster_scale must be between 1 and 8")
	}
	if !strings.EqualFold(c.Export.PageSize, "A4") {
		return fmt.Errorf("unsupported export page_size: %s", c.Export.PageSize)
	}
	if c.Export.MarginMM < 0 || c.Export.MarginMM >= 105 {
		return fmt.Errorf("export margin_mm must be between 0 and 105")
	}
	if c.Export.TimeoutSeconds <= 0 {
		return fmt.Errorf("export timeout_seconds must be positive")
	}
	if c.Export.RateLimit <= 0 {
		return fmt.Errorf("export rate_limit must be positive")
	}
	return nil
}

// Address returns the listen address for the server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Timeout returns the export timeout as a duration
func (c *ExportConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long an exported PDF stays cached
func (c *ExportConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
