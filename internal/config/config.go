// Package config loads the generator defaults from an optional rows.yaml and
// ROWS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/joeblew999/plat-rows/internal/geometry"
	"github.com/joeblew999/plat-rows/internal/network"
	"github.com/joeblew999/plat-rows/internal/rows"
)

// Config holds the generator defaults.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	SpacingM        float64 `mapstructure:"spacing_m" yaml:"spacing_m"`
	StartLetter     string  `mapstructure:"start_letter" yaml:"start_letter"`
	StartNum        int     `mapstructure:"start_num" yaml:"start_num"`
	ZeroPad         bool    `mapstructure:"zero_pad" yaml:"zero_pad"`
	DualZone        bool    `mapstructure:"dual_zone" yaml:"dual_zone"`
	KeepStartLetter bool    `mapstructure:"keep_start_letter" yaml:"keep_start_letter"`
	DestSide        string  `mapstructure:"dest_side" yaml:"dest_side"`
	Tolerance       float64 `mapstructure:"tolerance" yaml:"tolerance"`

	TurnA TurnConfig `mapstructure:"turn_a" yaml:"turn_a"`
	TurnB TurnConfig `mapstructure:"turn_b" yaml:"turn_b"`
}

// TurnConfig configures one row end. Template is a path to a GeoJSON file.
type TurnConfig struct {
	Template       string  `mapstructure:"template" yaml:"template,omitempty"`
	Attach         bool    `mapstructure:"attach" yaml:"attach"`
	RotationOffset float64 `mapstructure:"rotation_offset" yaml:"rotation_offset"`
	FlipHorizontal bool    `mapstructure:"flip_horizontal" yaml:"flip_horizontal"`
	FlipVertical   bool    `mapstructure:"flip_vertical" yaml:"flip_vertical"`
}

// Load reads configuration from file and environment variables. With an
// empty path, rows.yaml is looked up in . and ./configs and may be missing;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := network.DefaultOptions()
	v.SetDefault("log_level", "info")
	v.SetDefault("spacing_m", d.SpacingM)
	v.SetDefault("start_letter", d.StartLetter)
	v.SetDefault("start_num", d.StartNum)
	v.SetDefault("zero_pad", d.ZeroPad)
	v.SetDefault("dual_zone", d.DualZone)
	v.SetDefault("keep_start_letter", d.KeepStartLetter)
	v.SetDefault("dest_side", d.DestSide.String())
	v.SetDefault("tolerance", geometry.DefaultTolerance)
	for _, end := range []string{"turn_a", "turn_b"} {
		v.SetDefault(end+".template", "")
		v.SetDefault(end+".attach", false)
		v.SetDefault(end+".rotation_offset", 0.0)
		v.SetDefault(end+".flip_horizontal", false)
		v.SetDefault(end+".flip_vertical", false)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("rows")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: ROWS_TURN_A_ATTACH → turn_a.attach
	v.SetEnvPrefix("ROWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the defaults form valid generator options.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if _, err := rows.ParseSide(c.DestSide); err != nil {
		errs = append(errs, fmt.Sprintf("dest_side: %v", err))
	} else if err := c.Options().Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Options converts the configuration to generator options. Turn templates
// are left nil; the caller loads them from TurnConfig.Template.
func (c *Config) Options() network.Options {
	side, _ := rows.ParseSide(c.DestSide)
	return network.Options{
		SpacingM:        c.SpacingM,
		StartLetter:     c.StartLetter,
		StartNum:        c.StartNum,
		ZeroPad:         c.ZeroPad,
		DualZone:        c.DualZone,
		KeepStartLetter: c.KeepStartLetter,
		DestSide:        side,
		Tolerance:       c.Tolerance,
		TurnA:           c.TurnA.options(),
		TurnB:           c.TurnB.options(),
	}
}

func (t TurnConfig) options() network.TurnOptions {
	return network.TurnOptions{
		Attach:         t.Attach,
		RotationOffset: t.RotationOffset,
		FlipHorizontal: t.FlipHorizontal,
		FlipVertical:   t.FlipVertical,
	}
}
