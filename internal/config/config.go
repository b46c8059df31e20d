package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/spf13/viper"
)

// ErrInvalid wraps validation failures of a loaded configuration
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// Config holds all application configuration
type Config struct {
	Pull    PullConfig    `mapstructure:"pull"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PullConfig mirrors pull.Config in terminal cells
type PullConfig struct {
	ScrollFraction   float64       `mapstructure:"scroll_fraction" validate:"gt=0,lte=1"`
	RefreshOnRelease bool          `mapstructure:"refresh_on_release"`
	MinimizeEnabled  bool          `mapstructure:"minimize_enabled"`
	MinimizeDelay    time.Duration `mapstructure:"minimize_delay" validate:"gte=0"`
	TouchSlop        float64       `mapstructure:"touch_slop" validate:"gte=0"`
	HeaderLayout     string        `mapstructure:"header_layout" validate:"required"`
}

// FeedConfig holds the feed source configuration
type FeedConfig struct {
	Name      string        `mapstructure:"name" validate:"required"`
	BatchSize int           `mapstructure:"batch_size" validate:"gte=1,lte=100"` // Items produced per refresh
	MaxItems  int           `mapstructure:"max_items" validate:"gte=1"`          // Cap on the merged list
	Latency   time.Duration `mapstructure:"latency" validate:"gte=0"`            // Simulated fetch latency
	Seed      int64         `mapstructure:"seed"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty = memory-only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme" validate:"oneof=default mono"`
	HistorySize int    `mapstructure:"history_size" validate:"gte=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Pull: PullConfig{
			ScrollFraction:   pull.DefaultScrollFraction,
			RefreshOnRelease: false,
			MinimizeEnabled:  true,
			MinimizeDelay:    pull.DefaultMinimizeDelay,
			TouchSlop:        1, // One terminal cell
			HeaderLayout:     pull.DefaultHeaderLayout,
		},
		Feed: FeedConfig{
			Name:      "pullfeed",
			BatchSize: 3,
			MaxItems:  200,
			Latency:   1500 * time.Millisecond,
		},
		Store: StoreConfig{
			Path: defaultCachePath(),
		},
		UI: UIConfig{
			Theme:       "default",
			HistorySize: 5,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pullfeed", "pullfeed.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pullfeed", "pullfeed.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pullfeed")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pullfeed")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "pullfeed", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pullfeed", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return load(defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from dir and environment only
func LoadConfigFrom(dir string) (*Config, error) {
	return load(dir)
}

func load(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. PULLFEED_PULL_TOUCH_SLOP
	v.SetEnvPrefix("PULLFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("pull.scroll_fraction", cfg.Pull.ScrollFraction)
	v.SetDefault("pull.refresh_on_release", cfg.Pull.RefreshOnRelease)
	v.SetDefault("pull.minimize_enabled", cfg.Pull.MinimizeEnabled)
	v.SetDefault("pull.minimize_delay", cfg.Pull.MinimizeDelay)
	v.SetDefault("pull.touch_slop", cfg.Pull.TouchSlop)
	v.SetDefault("pull.header_layout", cfg.Pull.HeaderLayout)

	v.SetDefault("feed.name", cfg.Feed.Name)
	v.SetDefault("feed.batch_size", cfg.Feed.BatchSize)
	v.SetDefault("feed.max_items", cfg.Feed.MaxItems)
	v.SetDefault("feed.latency", cfg.Feed.Latency)
	v.SetDefault("feed.seed", cfg.Feed.Seed)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.history_size", cfg.UI.HistorySize)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ToPull converts the pull section into an attacher configuration
func (c *Config) ToPull() pull.Config {
	return pull.Config{
		ScrollFraction:   c.Pull.ScrollFraction,
		RefreshOnRelease: c.Pull.RefreshOnRelease,
		MinimizeEnabled:  c.Pull.MinimizeEnabled,
		MinimizeDelay:    c.Pull.MinimizeDelay,
		TouchSlop:        c.Pull.TouchSlop,
		HeaderLayout:     c.Pull.HeaderLayout,
	}
}

// ClearCache removes all cached data under the configured store path
func (c *Config) ClearCache() error {
	if c.Store.Path == "" {
		return nil
	}
	if err := os.RemoveAll(c.Store.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
