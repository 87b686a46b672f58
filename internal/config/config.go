package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	// ConfigDir holds templates.json and settings.json. Defaults to
	// ~/.photo-watermark.
	ConfigDir string `yaml:"config_dir" env:"WATERMARK_CONFIG_DIR"`

	Preview PreviewConfig `yaml:"preview"`
	Export  ExportConfig  `yaml:"export"`
	Fonts   FontsConfig   `yaml:"fonts"`
}

type PreviewConfig struct {
	// Preview composites are downsampled to fit this box to keep redraw
	// latency low.
	MaxWidth  int `yaml:"max_width" env:"WATERMARK_PREVIEW_MAX_WIDTH" env-default:"800"`
	MaxHeight int `yaml:"max_height" env:"WATERMARK_PREVIEW_MAX_HEIGHT" env-default:"600"`
}

type ExportConfig struct {
	DefaultFormat  string `yaml:"default_format" env:"WATERMARK_EXPORT_FORMAT" env-default:"jpeg"`
	DefaultQuality int    `yaml:"default_quality" env:"WATERMARK_EXPORT_QUALITY" env-default:"95"`
}

type FontsConfig struct {
	// Extra directories searched by the font resolver, in addition to the
	// platform defaults.
	Dirs []string `yaml:"dirs" env:"WATERMARK_FONT_DIRS" env-separator:":"`
}

// MustLoad reads the YAML config named by WATERMARK_CONFIG (default
// config.yaml next to the binary). A missing file is not an error: defaults
// and environment variables apply.
func MustLoad() (*Config, error) {
	cfg := &Config{}

	path := os.Getenv("WATERMARK_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, err
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.ConfigDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.ConfigDir = filepath.Join(home, ".photo-watermark")
	}

	return cfg, nil
}

func (c *Config) TemplatesPath() string {
	return filepath.Join(c.ConfigDir, "templates.json")
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.ConfigDir, "settings.json")
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    100 * time.Millisecond,
		Backoff:  2,
	}
}
