// Package config holds the verifier's settings. The zero-flag defaults are the
// compiled-in values for a storefront dev server on localhost:3000; a YAML
// file, VERIFYLINKS_* environment variables and command-line flags can
// override them, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. VERIFYLINKS_BASE_URL.
const EnvPrefix = "VERIFYLINKS"

// Config is passed to the fetcher, classifier and verifier at startup.
type Config struct {
	BaseURL         string        `mapstructure:"base_url"`
	UserAgent       string        `mapstructure:"user_agent"`
	LocalHosts      []string      `mapstructure:"local_hosts"`
	ExternalDomains []string      `mapstructure:"external_domains"`
	RequestTimeout  time.Duration `mapstructure:"timeout"`    // 0 means no timeout
	Retries         int           `mapstructure:"retries"`    // extra attempts after the first
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	Verbose         bool          `mapstructure:"verbose"`
	Interactive     bool          `mapstructure:"tui"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		BaseURL:    "http://localhost:3000",
		UserAgent:  "LinkCrawler/1.0",
		LocalHosts: []string{"localhost", "127.0.0.1"},
		ExternalDomains: []string{
			"facebook.com",
			"instagram.com",
			"twitter.com",
			"linkedin.com",
			"youtube.com",
			"tiktok.com",
			"wa.me",
			"whatsapp.com",
			"t.me",
			"telegram.org",
		},
		RetryDelay: time.Second,
	}
}

// Load builds a Config from defaults, an optional YAML file, the environment
// and flags. An empty path searches the working directory for
// verifylinks.yaml and silently falls back to defaults if none is found.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("verifylinks")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("local_hosts", d.LocalHosts)
	v.SetDefault("external_domains", d.ExternalDomains)
	v.SetDefault("timeout", d.RequestTimeout)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("retry_delay", d.RetryDelay)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("tui", d.Interactive)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"base-url": "base_url",
	"timeout":  "timeout",
	"retries":  "retries",
	"verbose":  "verbose",
	"tui":      "tui",
}

// bindFlags binds only the flags that exist on the set, so callers can expose
// a subset.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("base_url %q: missing host", c.BaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must not be negative, got %s", c.RetryDelay)
	}
	return nil
}

// BaseHost returns the hostname of BaseURL without port.
func (c Config) BaseHost() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
