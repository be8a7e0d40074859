/*
Package config manages the TOML configuration shared by the command-line
tools:

	[build]
	backend = "staged"
	strategy = "bits"
	verify_cache = false

	[analyze]
	fallback_left_id = 1288
	fallback_right_id = 1288
	fallback_cost = 10000

	[log]
	level = "info"
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/npillmayer/morph"
	"github.com/npillmayer/morph/dat"
	"github.com/npillmayer/morph/dat/cache"
)

// Config holds the entire config structure
type Config struct {
	Build   BuildConfig   `toml:"build"`
	Analyze AnalyzeConfig `toml:"analyze"`
	Log     LogConfig     `toml:"log"`
}

// BuildConfig selects how dictionaries are constructed.
type BuildConfig struct {
	Backend     string `toml:"backend"`
	Strategy    string `toml:"strategy"`
	VerifyCache bool   `toml:"verify_cache"` // development only, slows construction
}

// AnalyzeConfig holds the unknown-word policy.
type AnalyzeConfig struct {
	FallbackLeftID  uint16 `toml:"fallback_left_id"`
	FallbackRightID uint16 `toml:"fallback_right_id"`
	FallbackCost    int16  `toml:"fallback_cost"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	fb := morph.DefaultFallback
	return &Config{
		Build: BuildConfig{
			Backend:  string(morph.StagedBackend),
			Strategy: cache.Bits.String(),
		},
		Analyze: AnalyzeConfig{
			FallbackLeftID:  fb.LeftID,
			FallbackRightID: fb.RightID,
			FallbackCost:    fb.Cost,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Ignoring unknown config key %q in %s", key.String(), configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	return config, nil
}

// LoadConfigOrDefault loads configPath if given, builtin defaults otherwise.
func LoadConfigOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

// SaveConfig writes config to a TOML file.
func SaveConfig(config *Config, configPath string) (err error) {
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return toml.NewEncoder(f).Encode(config)
}

// Validate checks all enumerated values.
func (c *Config) Validate() error {
	if _, err := c.Backend(); err != nil {
		return err
	}
	if _, err := c.DatOptions(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Backend returns the configured dictionary backend.
func (c *Config) Backend() (morph.Backend, error) {
	return morph.ParseBackend(c.Build.Backend)
}

// DatOptions returns the double-array construction options.
func (c *Config) DatOptions() (dat.Options, error) {
	s, err := cache.ParseStrategy(c.Build.Strategy)
	if err != nil {
		return dat.Options{}, err
	}
	return dat.Options{Strategy: s, Verify: c.Build.VerifyCache}, nil
}

// Fallback returns the unknown-word policy.
func (c *Config) Fallback() morph.Fallback {
	return morph.Fallback{
		LeftID:  c.Analyze.FallbackLeftID,
		RightID: c.Analyze.FallbackRightID,
		Cost:    c.Analyze.FallbackCost,
	}
}

// LogLevel returns the configured log level, info if unparsable.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
