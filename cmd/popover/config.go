package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/popover"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultDuration       = 0.9
	defaultDamping        = 1.0
	defaultCollapsedRatio = 0.1
	defaultExpandedRatio  = 0.85
	defaultWidth          = 640
	defaultHeight         = 480
)

// cliConfig holds the settings shared by every host.
type cliConfig struct {
	Duration  float64 `mapstructure:"duration"`
	Damping   float64 `mapstructure:"damping"`
	Collapsed float64 `mapstructure:"collapsed"`
	Expanded  float64 `mapstructure:"expanded"`
	Easing    string  `mapstructure:"easing"`
	Initial   string  `mapstructure:"initial"`
	Debug     bool    `mapstructure:"debug"`
	Width     int     `mapstructure:"width"`
	Height    int     `mapstructure:"height"`
	ShowFPS   bool    `mapstructure:"show-fps"`
}

func loadCLIConfig(configPath string, flags *pflag.FlagSet) (cliConfig, error) {
	var cfg cliConfig

	v := viper.New()
	v.SetEnvPrefix("POPOVER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("duration", defaultDuration)
	v.SetDefault("damping", defaultDamping)
	v.SetDefault("collapsed", defaultCollapsedRatio)
	v.SetDefault("expanded", defaultExpandedRatio)
	v.SetDefault("easing", "spring")
	v.SetDefault("initial", "collapsed")
	v.SetDefault("debug", false)
	v.SetDefault("width", defaultWidth)
	v.SetDefault("height", defaultHeight)
	v.SetDefault("show-fps", false)

	if flags != nil {
		// Only flags the user actually set override the file and environment.
		var bindErr error
		flags.Visit(func(f *pflag.Flag) {
			if f.Name == "config" || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(f.Name, f)
		})
		if bindErr != nil {
			return cfg, fmt.Errorf("binding flags: %w", bindErr)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "popover", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// popoverConfig converts the CLI settings into a validated popover.Config
// for a screen of the given height, in whatever unit the host measures.
func (c cliConfig) popoverConfig(screenHeight float64) (popover.Config, error) {
	initial, err := popover.ParseCardState(c.Initial)
	if err != nil {
		return popover.Config{}, fmt.Errorf("%w: %v", popover.ErrInvalidConfig, err)
	}
	cfg := popover.DefaultConfig()
	cfg.NominalDuration = c.Duration
	cfg.DampingRatio = c.Damping
	cfg.CollapsedExtent = math.Round(screenHeight * c.Collapsed)
	cfg.ExpandedExtent = math.Round(screenHeight * c.Expanded)
	cfg.Initial = initial
	cfg.Easing = c.Easing
	cfg.Debug = c.Debug
	if err := cfg.Validate(); err != nil {
		return popover.Config{}, err
	}
	return cfg, nil
}
