package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/youruser/deckbuilder/internal/cards"
	"github.com/youruser/deckbuilder/internal/deck"
	"github.com/youruser/deckbuilder/internal/share"
)

const (
	defaultAddr           = "127.0.0.1:8080"
	defaultCatalog        = "data/catalog.json"
	defaultCatalogTimeout = cards.DefaultFetchTimeout
	defaultStorage        = "sqlite"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// appConfig is the runtime configuration read from defaults, the optional
// config file and DECKBUILDER_* environment variables.
type appConfig struct {
	Addr           string         `mapstructure:"addr"`
	Catalog        string         `mapstructure:"catalog"`
	CatalogTimeout time.Duration  `mapstructure:"catalog-timeout"`
	Storage        string         `mapstructure:"storage"`
	DBPath         string         `mapstructure:"db-path"`
	DefaultName    string         `mapstructure:"default-name"`
	QRSize         int            `mapstructure:"qr-size"`
	LogLevel       string         `mapstructure:"log-level"`
	LogFormat      string         `mapstructure:"log-format"`
	Ordering       orderingConfig `mapstructure:"ordering"`
	ConfigPath     string         `mapstructure:"-"`
}

type orderingConfig struct {
	Kinds []string `mapstructure:"kinds"`
	Types []string `mapstructure:"types"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	defaultDBPath := filepath.Join("data", "deck.db")
	home, err := os.UserHomeDir()
	if err == nil {
		defaultDBPath = filepath.Join(home, ".local", "share", "deckbuilder", "deck.db")
	}

	v := viper.New()
	v.SetEnvPrefix("DECKBUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", defaultAddr)
	v.SetDefault("catalog", defaultCatalog)
	v.SetDefault("catalog-timeout", defaultCatalogTimeout)
	v.SetDefault("storage", defaultStorage)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("default-name", deck.DefaultName)
	v.SetDefault("qr-size", share.DefaultQRSize)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-format", defaultLogFormat)
	v.SetDefault("ordering.kinds", kindStrings(cards.DefaultKinds))
	v.SetDefault("ordering.types", typeStrings(cards.DefaultTypes))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home != "" {
		v.SetConfigFile(filepath.Join(home, ".config", "deckbuilder", "config.yml"))
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			// Only the default location is optional.
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || os.IsNotExist(err)
			if configPath != "" || !missing {
				return cfg, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	switch c.Storage {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage %q (want sqlite or memory)", c.Storage)
	}
	if c.Storage == "sqlite" && strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db-path is required for sqlite storage")
	}
	if c.QRSize < share.MinQRSize || c.QRSize > share.MaxQRSize {
		return fmt.Errorf("invalid qr-size: %d", c.QRSize)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("invalid catalog-timeout: %s", c.CatalogTimeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q", c.LogFormat)
	}
	_, err := c.ordering()
	return err
}

func (c appConfig) ordering() (cards.Ordering, error) {
	kinds := make([]cards.Kind, len(c.Ordering.Kinds))
	for i, k := range c.Ordering.Kinds {
		kinds[i] = cards.Kind(k)
	}
	types := make([]cards.Type, len(c.Ordering.Types))
	for i, t := range c.Ordering.Types {
		types[i] = cards.Type(t)
	}
	return cards.NewOrdering(kinds, types)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log-level %q", s)
	}
	return l, nil
}

func kindStrings(ks []cards.Kind) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}

func typeStrings(ts []cards.Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
