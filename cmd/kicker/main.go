package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/uks22/penalty-kick/internal/config"
	"github.com/uks22/penalty-kick/internal/engine"
	"github.com/uks22/penalty-kick/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kicker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("missing subcommand; try 'train'")
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "train":
		return runTrain(os.Args[2:])
	default:
		return fmt.Errorf("unknown subcommand %q", subcommand)
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"variant":    config.KeyVariant,
	"episodes":   config.KeyNumEpisodes,
	"opponents":  config.KeyNumOpponents,
	"alpha":      config.KeyAlphaInit,
	"gamma":      config.KeyGamma,
	"epsilon":    config.KeyEpsilonInit,
	"decay":      config.KeyDecayInit,
	"seed":       config.KeySeed,
	"chart":      config.KeyChart,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
	"decimals":   config.KeyDecimals,
	"quiet":      config.KeyQuiet,
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "optional config file (yaml, json or toml)")
	fs.String("variant", string(engine.VariantLine), "action space: 1d or 2d")
	fs.Int("episodes", engine.DefaultEpisodes, "training episodes per goalkeeper")
	fs.Int("opponents", 0, "number of goalkeepers (0 for the variant default)")
	fs.Float64("alpha", engine.DefaultAlphaInit, "initial learning rate (0-1]")
	fs.Float64("gamma", engine.DefaultGamma, "discount factor [0-1)")
	fs.Float64("epsilon", engine.DefaultEpsilonInit, "initial exploration rate (0-1)")
	fs.Float64("decay", engine.DefaultDecayInit, "initial retention decay (0-1]")
	fs.Int64("seed", 0, "deterministic seed (0 for time-based)")
	fs.String("chart", "", "write an HTML chart of the final strategy to this path")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "text", "log format: text or json")
	fs.Int("decimals", engine.DefaultDecimals, "decimals in printed probabilities")
	fs.Bool("quiet", false, "only print the final strategy")
	noColor := fs.Bool("no-color", false, "disable coloured output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	v := config.New()
	if err := applyFlags(v, fs); err != nil {
		return err
	}
	settings, err := config.Load(v, *configPath)
	if err != nil {
		return err
	}
	if *noColor || os.Getenv("NO_COLOR") != "" {
		settings.Color = false
	}

	logger, err := newLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	cfg := settings.Engine
	cfg.Logger = logger

	trainer, err := engine.NewTrainer(cfg)
	if err != nil {
		return err
	}
	console := report.NewConsole(os.Stdout, trainer.Space(), cfg.NumOpponents, settings.Decimals, settings.Color)
	if !settings.Quiet {
		trainer.OnOpponent(console.Opponent)
	}

	result, err := trainer.Run()
	if err != nil {
		return err
	}
	console.Final(result)

	if settings.Chart != "" {
		if err := report.SaveChart(settings.Chart, result); err != nil {
			return err
		}
		logger.WithField("path", settings.Chart).Info("chart written")
	}
	return nil
}

// applyFlags copies explicitly set flags over file and environment values.
func applyFlags(v *viper.Viper, fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			err = fmt.Errorf("flag -%s has no typed value", f.Name)
			return
		}
		v.Set(key, getter.Get())
	})
	return err
}

func newLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}
