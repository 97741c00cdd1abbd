// Package config holds the yearwheel tool settings: render defaults,
// logging and calendar import. The file is YAML; YEARWHEEL_* environment
// variables override it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. YEARWHEEL_RENDER_SIZE.
const EnvPrefix = "YEARWHEEL"

// RenderConfig holds the defaults of the render commands.
type RenderConfig struct {
	Size           int     `yaml:"size" mapstructure:"size"`
	Zoom           float64 `yaml:"zoom" mapstructure:"zoom"`
	Locale         string  `yaml:"locale" mapstructure:"locale"`
	Format         string  `yaml:"format" mapstructure:"format"`
	Background     string  `yaml:"background" mapstructure:"background"`
	ShowWeekRing   bool    `yaml:"show_week_ring" mapstructure:"show_week_ring"`
	ShowMonthRing  bool    `yaml:"show_month_ring" mapstructure:"show_month_ring"`
	ShowRingNames  bool    `yaml:"show_ring_names" mapstructure:"show_ring_names"`
	RotationOffset float64 `yaml:"rotation_offset" mapstructure:"rotation_offset"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
	// Format is text or json.
	Format string `yaml:"format" mapstructure:"format"`
}

// ImportConfig controls iCalendar import.
type ImportConfig struct {
	// RingID and ActivityID receive imported items unless the command
	// line names others.
	RingID     string `yaml:"ring_id" mapstructure:"ring_id"`
	ActivityID string `yaml:"activity_id" mapstructure:"activity_id"`
	// MaxOccurrences caps the expansion of one recurring event.
	MaxOccurrences int `yaml:"max_occurrences" mapstructure:"max_occurrences"`
	// Timezone is the IANA zone used for floating event times.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// Config is the top-level configuration.
type Config struct {
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Import ImportConfig `yaml:"import" mapstructure:"import"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Size:           2000,
			Zoom:           100,
			Locale:         "sv",
			Format:         "png",
			Background:     "#FFFFFF",
			ShowWeekRing:   true,
			ShowMonthRing:  true,
			ShowRingNames:  true,
			RotationOffset: -105,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Import: ImportConfig{
			MaxOccurrences: 500,
			Timezone:       "UTC",
		},
	}
}

// Normalize fills in zero values so partial files behave like full ones.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Render.Size <= 0 {
		c.Render.Size = d.Render.Size
	}
	if c.Render.Zoom <= 0 {
		c.Render.Zoom = d.Render.Zoom
	}
	switch c.Render.Locale {
	case "sv", "en":
	default:
		c.Render.Locale = d.Render.Locale
	}
	c.Render.Format = strings.ToLower(c.Render.Format)
	if c.Render.Format != "png" && c.Render.Format != "svg" {
		c.Render.Format = d.Render.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format != "json" {
		c.Log.Format = d.Log.Format
	}
	if c.Import.MaxOccurrences <= 0 {
		c.Import.MaxOccurrences = d.Import.MaxOccurrences
	}
	if c.Import.Timezone == "" {
		c.Import.Timezone = d.Import.Timezone
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "yearwheel", "config.yaml"), nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("render.size", d.Render.Size)
	v.SetDefault("render.zoom", d.Render.Zoom)
	v.SetDefault("render.locale", d.Render.Locale)
	v.SetDefault("render.format", d.Render.Format)
	v.SetDefault("render.background", d.Render.Background)
	v.SetDefault("render.show_week_ring", d.Render.ShowWeekRing)
	v.SetDefault("render.show_month_ring", d.Render.ShowMonthRing)
	v.SetDefault("render.show_ring_names", d.Render.ShowRingNames)
	v.SetDefault("render.rotation_offset", d.Render.RotationOffset)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("import.ring_id", d.Import.RingID)
	v.SetDefault("import.activity_id", d.Import.ActivityID)
	v.SetDefault("import.max_occurrences", d.Import.MaxOccurrences)
	v.SetDefault("import.timezone", d.Import.Timezone)
}

// Load reads the configuration at path.
//
// A missing file is created with the defaults (0600). Keys absent from the
// file take their defaults, and YEARWHEEL_<SECTION>_<KEY> environment
// variables override both.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename. The
// parent directory is created 0700 and the file ends up 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".yearwheel-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save writes c to path.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
