// Package config loads tokentint settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmylchreest/tokentint/internal/gamut"
	"github.com/jmylchreest/tokentint/pkg/derive"
)

// EnvPrefix prefixes every environment override, e.g. TOKENTINT_MIN_WCAG_RATIO.
const EnvPrefix = "TOKENTINT"

// Config is the effective configuration.
type Config struct {
	MinWCAGRatio       float64    `mapstructure:"min_wcag_ratio" json:"minWcagRatio" yaml:"min_wcag_ratio"`
	States             []string   `mapstructure:"states" json:"states" yaml:"states"`
	IncludeBase        bool       `mapstructure:"include_base" json:"includeBase" yaml:"include_base"`
	CheckAccessibility bool       `mapstructure:"check_accessibility" json:"checkAccessibility" yaml:"check_accessibility"`
	Prefix             string     `mapstructure:"prefix" json:"prefix" yaml:"prefix"`
	Transforms         Transforms `mapstructure:"transforms" json:"transforms" yaml:"transforms"`
	Gamut              Gamut      `mapstructure:"gamut" json:"gamut" yaml:"gamut"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" json:"file,omitempty" yaml:"file,omitempty"`
}

// Transforms holds the per-state amounts of the default transform table.
type Transforms struct {
	Hover    float64 `mapstructure:"hover" json:"hover" yaml:"hover"`
	Active   float64 `mapstructure:"active" json:"active" yaml:"active"`
	Disabled float64 `mapstructure:"disabled" json:"disabled" yaml:"disabled"`
	Selected float64 `mapstructure:"selected" json:"selected" yaml:"selected"`
}

// Gamut holds the lookup table resolution.
type Gamut struct {
	LightnessSteps int `mapstructure:"lightness_steps" json:"lightnessSteps" yaml:"lightness_steps"`
	HueSteps       int `mapstructure:"hue_steps" json:"hueSteps" yaml:"hue_steps"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	defaults := derive.DefaultOptions()
	names := make([]string, 0, defaults.States.Len())
	for _, s := range defaults.States.States() {
		names = append(names, s.String())
	}

	v.SetDefault("min_wcag_ratio", defaults.MinWCAGRatio)
	v.SetDefault("states", names)
	v.SetDefault("include_base", defaults.IncludeBase)
	v.SetDefault("check_accessibility", defaults.CheckAccessibility)
	v.SetDefault("prefix", defaults.Prefix)
	v.SetDefault("transforms.hover", derive.DefaultHoverDelta)
	v.SetDefault("transforms.active", derive.DefaultActiveDelta)
	v.SetDefault("transforms.disabled", derive.DefaultDisabledFactor)
	v.SetDefault("transforms.selected", derive.DefaultSelectedDelta)
	v.SetDefault("gamut.lightness_steps", gamut.DefaultLightnessSteps)
	v.SetDefault("gamut.hue_steps", gamut.DefaultHueSteps)
}

// DefaultDir returns the directory searched for config.yaml.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory if config dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine config directory: %w", err)
		}
		return filepath.Join(home, ".config", "tokentint"), nil
	}
	return filepath.Join(configDir, "tokentint"), nil
}

// New returns a viper instance with defaults, environment overrides and the
// config search path set. If file is non-empty it is used instead of the
// search path.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		// Some platforms put UserConfigDir outside ~/.config.
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tokentint"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. A missing file on the search path is not an
// error; a missing or unreadable explicit file is.
func Load(file string) (*Config, error) {
	return Read(New(file))
}

// Read unmarshals the configuration held by v, reading its config file first.
func Read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration describes a usable derivation.
func (c *Config) Validate() error {
	if _, err := c.DeriveOptions(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.TransformTable().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Gamut.LightnessSteps < 2 || c.Gamut.HueSteps < 1 {
		return fmt.Errorf("invalid config: %w: %d lightness x %d hue steps",
			gamut.ErrInvalidResolution, c.Gamut.LightnessSteps, c.Gamut.HueSteps)
	}
	return nil
}

// DeriveOptions converts the configuration to derivation options.
func (c *Config) DeriveOptions() (derive.Options, error) {
	states, err := derive.ParseStates(c.States)
	if err != nil {
		return derive.Options{}, err
	}
	opts := derive.Options{
		States:             states,
		MinWCAGRatio:       c.MinWCAGRatio,
		IncludeBase:        c.IncludeBase,
		CheckAccessibility: c.CheckAccessibility,
		Prefix:             c.Prefix,
	}
	if err := opts.Validate(); err != nil {
		return derive.Options{}, err
	}
	return opts, nil
}

// TransformTable returns the default table with the configured amounts.
func (c *Config) TransformTable() derive.TransformTable {
	tt := derive.DefaultTransforms()
	tt[derive.StateHover] = derive.TransformSpec{Kind: derive.KindLighten, Amount: c.Transforms.Hover}
	tt[derive.StateActive] = derive.TransformSpec{Kind: derive.KindDarken, Amount: c.Transforms.Active}
	tt[derive.StateDisabled] = derive.TransformSpec{Kind: derive.KindDesaturate, Amount: c.Transforms.Disabled}
	tt[derive.StateSelected] = derive.TransformSpec{Kind: derive.KindSaturate, Amount: c.Transforms.Selected}
	return tt
}

// GamutOptions returns the lookup table options.
func (c *Config) GamutOptions() gamut.Options {
	return gamut.Options{
		LightnessSteps: c.Gamut.LightnessSteps,
		HueSteps:       c.Gamut.HueSteps,
	}
}
