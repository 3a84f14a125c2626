// Package config loads training settings from defaults, an optional config
// file, a .env file and KICKER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/uks22/penalty-kick/internal/engine"
)

const envPrefix = "KICKER"

// Keys recognised in files, environment and flag overrides.
const (
	KeyVariant       = "variant"
	KeyAlphaInit     = "alpha_init"
	KeyGamma         = "gamma"
	KeyEpsilonInit   = "epsilon_init"
	KeyNumEpisodes   = "num_episodes"
	KeyDecayInit     = "decay_init"
	KeyNumOpponents  = "num_opponents"
	KeySeed          = "seed"
	KeyKeepers       = "keepers"
	KeyProgressEvery = "progress_every"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyChart         = "chart"
	KeyColor         = "color"
	KeyDecimals      = "decimals"
	KeyQuiet         = "quiet"
)

type fileConfig struct {
	Variant       string      `mapstructure:"variant"`
	AlphaInit     float64     `mapstructure:"alpha_init"`
	Gamma         float64     `mapstructure:"gamma"`
	EpsilonInit   float64     `mapstructure:"epsilon_init"`
	NumEpisodes   int         `mapstructure:"num_episodes"`
	DecayInit     float64     `mapstructure:"decay_init"`
	NumOpponents  int         `mapstructure:"num_opponents"` // 0 selects the variant default
	Seed          int64       `mapstructure:"seed"`
	Keepers       [][]float64 `mapstructure:"keepers"`
	ProgressEvery int         `mapstructure:"progress_every"`
	LogLevel      string      `mapstructure:"log_level"`
	LogFormat     string      `mapstructure:"log_format"`
	Chart         string      `mapstructure:"chart"`
	Color         bool        `mapstructure:"color"`
	Decimals      int         `mapstructure:"decimals"`
	Quiet         bool        `mapstructure:"quiet"`
}

// Settings is everything a training run needs.
type Settings struct {
	Engine    engine.Config
	LogLevel  string
	LogFormat string
	Chart     string
	Color     bool
	Decimals  int
	Quiet     bool
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyVariant, string(engine.VariantLine))
	v.SetDefault(KeyAlphaInit, engine.DefaultAlphaInit)
	v.SetDefault(KeyGamma, engine.DefaultGamma)
	v.SetDefault(KeyEpsilonInit, engine.DefaultEpsilonInit)
	v.SetDefault(KeyNumEpisodes, engine.DefaultEpisodes)
	v.SetDefault(KeyDecayInit, engine.DefaultDecayInit)
	v.SetDefault(KeyNumOpponents, 0)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyProgressEvery, engine.DefaultProgressEvery)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyChart, "")
	v.SetDefault(KeyColor, true)
	v.SetDefault(KeyDecimals, engine.DefaultDecimals)
	v.SetDefault(KeyQuiet, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv reads .env files into the process environment. Missing files are fine.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and resolves the final settings.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}

	variant := engine.Variant(strings.ToLower(fc.Variant))
	cfg := engine.DefaultConfig(variant)
	cfg.Variant = variant
	cfg.AlphaInit = fc.AlphaInit
	cfg.Gamma = fc.Gamma
	cfg.EpsilonInit = fc.EpsilonInit
	cfg.NumEpisodes = fc.NumEpisodes
	cfg.DecayInit = fc.DecayInit
	cfg.Seed = fc.Seed
	cfg.ProgressEvery = fc.ProgressEvery
	for _, k := range fc.Keepers {
		cfg.Keepers = append(cfg.Keepers, engine.Keeper(k))
	}
	cfg.NumOpponents = fc.NumOpponents
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	if fc.Decimals < 0 {
		return Settings{}, &engine.ConfigurationError{Field: KeyDecimals, Value: fc.Decimals, Reason: "must not be negative"}
	}
	return Settings{
		Engine:    cfg,
		LogLevel:  fc.LogLevel,
		LogFormat: fc.LogFormat,
		Chart:     fc.Chart,
		Color:     fc.Color,
		Decimals:  fc.Decimals,
		Quiet:     fc.Quiet,
	}, nil
}
