package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

// Flag names bound to config keys.
const (
	FlagConfig   = "config"
	FlagAPIURL   = "api-url"
	FlagLogLevel = "log-level"
)

type TLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type api struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	TLS     TLS           `mapstructure:"tls"`
}

type session struct {
	// Path of the token file. Empty means the user config directory.
	Path string `mapstructure:"path"`
}

type notices struct {
	SuccessTTL time.Duration `mapstructure:"success_ttl"`
	FailureTTL time.Duration `mapstructure:"failure_ttl"`
}

type events struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
	Partitions         int32    `mapstructure:"partitions"`
	ReplicationFactor  int16    `mapstructure:"replication_factor"`
	TLS                TLS      `mapstructure:"tls"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	API      api        `mapstructure:"api"`
	Session  session    `mapstructure:"session"`
	Notices  notices    `mapstructure:"notices"`
	Events   events     `mapstructure:"events"`
}

var defaults = map[string]any{
	"log_level":                   "warn",
	"api.base_url":                "http://localhost:8000",
	"api.timeout":                 "0s",
	"api.tls.ca":                  "",
	"api.tls.cert":                "",
	"api.tls.key":                 "",
	"session.path":                "",
	"notices.success_ttl":         "1400ms",
	"notices.failure_ttl":         "1800ms",
	"events.enabled":              false,
	"events.seed_brokers":         []string{"localhost:9092"},
	"events.schema_registry_urls": []string{"http://localhost:8081"},
	"events.topic":                "storefront.client-events",
	"events.partitions":           3,
	"events.replication_factor":   1,
	"events.tls.ca":               "",
	"events.tls.cert":             "",
	"events.tls.key":              "",
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (yaml, json or toml)")
	fs.String(FlagAPIURL, "", "storefront API base URL")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn or error")
}

// Load merges, from lowest to highest priority, the defaults, the config
// file, STOREFRONT_* environment variables and the flags set in fs.
// fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	const op = "config.Load"

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if path := configFilepath(fs); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: failed to read config file: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	bindings := map[string]string{
		"api.base_url": FlagAPIURL,
		"log_level":    FlagLogLevel,
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func configFilepath(fs *pflag.FlagSet) string {
	if fs != nil {
		if path, err := fs.GetString(FlagConfig); err == nil && path != "" {
			return path
		}
	}
	return os.Getenv(configFileEnvName)
}

func (c Config) validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout is negative"))
	}
	if c.Events.Enabled {
		if len(c.Events.SeedBrokers) == 0 {
			errs = append(errs, errors.New("events.seed_brokers is empty"))
		}
		if len(c.Events.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("events.schema_registry_urls is empty"))
		}
		if c.Events.Topic == "" {
			errs = append(errs, errors.New("events.topic is empty"))
		}
	}
	return errors.Join(errs...)
}

func (c Config) Print(w io.Writer) {
	tamplate := `
General:
	LogLevel=%q

API:
	BaseURL=%q
	Timeout=%s
	TLS=%t

Session:
	Path=%q

Notices:
	SuccessTTL=%s
	FailureTTL=%s

Events:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q
	Partitions=%d
	ReplicationFactor=%d
	TLS=%t
`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.API.BaseURL,
		c.API.Timeout,
		c.API.TLS.enabled(),
		c.Session.Path,
		c.Notices.SuccessTTL,
		c.Notices.FailureTTL,
		c.Events.Enabled,
		c.Events.SeedBrokers,
		c.Events.SchemaRegistryURLs,
		c.Events.Topic,
		c.Events.Partitions,
		c.Events.ReplicationFactor,
		c.Events.TLS.enabled(),
	)
}

func (t TLS) enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}
