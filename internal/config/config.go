package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Frame    FrameConfig    `toml:"frame"`
	Data     DataConfig     `toml:"data"`
	Logging  LoggingConfig  `toml:"logging"`
}

type RegistryConfig struct {
	Name string `toml:"name"`
}

type FrameConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames int           `toml:"max_frames"` // 0 = run until signalled
}

type DataConfig struct {
	Components string `toml:"components"` // component definitions YAML, optional
	Types      string `toml:"types"`      // type declarations YAML, optional
	Scripts    string `toml:"scripts"`    // Lua scripts directory, optional
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is used in error messages only.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration. The driver falls back to it
// when the config file does not exist.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Frame.TickRate <= 0 {
		return fmt.Errorf("frame.tick_rate must be positive, got %s", c.Frame.TickRate)
	}
	if c.Frame.MaxFrames < 0 {
		return fmt.Errorf("frame.max_frames must not be negative, got %d", c.Frame.MaxFrames)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Registry: RegistryConfig{
			Name: "ecsreg",
		},
		Frame: FrameConfig{
			TickRate:  16 * time.Millisecond,
			MaxFrames: 0,
		},
		Data: DataConfig{
			Components: "data/yaml/components.yaml",
			Types:      "data/yaml/types.yaml",
			Scripts:    "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
