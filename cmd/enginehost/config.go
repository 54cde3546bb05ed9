package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/enginehost/colorsync"
	"github.com/gogpu/enginehost/surface"
)

const envPrefix = "ENGINEHOST"

var errBadConfig = errors.New("enginehost: invalid configuration")

// config is the resolved CLI configuration.
type config struct {
	LogLevel    slog.Level
	LogFormat   string
	Width       int
	Height      int
	Title       string
	Inset       surface.Inset
	Color       colorsync.UIColor
	MetricsAddr string
	Watch       string
}

// newViper returns a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "enginehost")
	v.SetDefault("surface.inset.top", surface.DefaultInset.Top)
	v.SetDefault("surface.inset.right", surface.DefaultInset.Right)
	v.SetDefault("surface.inset.bottom", surface.DefaultInset.Bottom)
	v.SetDefault("surface.inset.left", surface.DefaultInset.Left)
	v.SetDefault("model.color", colorsync.DefaultColor.Hex())
	v.SetDefault("metrics.addr", "")
	v.SetDefault("watch", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags maps flag names to config keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// readConfigFile loads path into v. An empty path is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// resolveConfig validates v and returns the typed configuration.
func resolveConfig(v *viper.Viper) (config, error) {
	cfg := config{
		LogFormat:   strings.ToLower(v.GetString("log.format")),
		Width:       v.GetInt("window.width"),
		Height:      v.GetInt("window.height"),
		Title:       v.GetString("window.title"),
		MetricsAddr: v.GetString("metrics.addr"),
		Watch:       v.GetString("watch"),
		Inset: surface.Inset{
			Top:    v.GetInt("surface.inset.top"),
			Right:  v.GetInt("surface.inset.right"),
			Bottom: v.GetInt("surface.inset.bottom"),
			Left:   v.GetInt("surface.inset.left"),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		return cfg, fmt.Errorf("%w: log.level: %v", errBadConfig, err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return cfg, fmt.Errorf("%w: log.format %q (want text or json)", errBadConfig, cfg.LogFormat)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("%w: window size %dx%d", errBadConfig, cfg.Width, cfg.Height)
	}
	in := cfg.Inset
	if in.Top < 0 || in.Right < 0 || in.Bottom < 0 || in.Left < 0 {
		return cfg, fmt.Errorf("%w: negative surface inset %+v", errBadConfig, in)
	}
	c, err := colorsync.ParseHex(v.GetString("model.color"))
	if err != nil {
		return cfg, fmt.Errorf("%w: model.color: %v", errBadConfig, err)
	}
	cfg.Color = c
	return cfg, nil
}

// newLogger builds the CLI logger from cfg.
func newLogger(w io.Writer, cfg config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
