// Package config provides Viper-based configuration for printfriendly.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/printfriendly/core/options"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
	"github.com/gaurav-prasanna/printfriendly/core/site"
)

// EnvPrefix prefixes environment overrides, e.g. PRINTFRIENDLY_SITE_BASE_URL.
const EnvPrefix = "PRINTFRIENDLY"

// Config is the complete printfriendly configuration.
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Content ContentConfig `mapstructure:"content"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Server  ServerConfig  `mapstructure:"server"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Logging LoggingConfig `mapstructure:"logging"`

	v *viper.Viper
}

// SiteConfig describes the site being printed.
type SiteConfig struct {
	Name          string      `mapstructure:"name"`
	BaseURL       string      `mapstructure:"base_url"`
	Permalinks    string      `mapstructure:"permalinks"`
	TrailingSlash bool        `mapstructure:"trailing_slash"`
	Terms         []site.Term `mapstructure:"terms"`
}

// ContentConfig locates post sources.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// ThemeConfig locates template overrides.
type ThemeConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FetchConfig contains settings for remote posts.
type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("printfriendly")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/printfriendly")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.v = v

	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("site.name", "My Site")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.permalinks", "path")
	v.SetDefault("site.trailing_slash", true)

	v.SetDefault("content.dir", "content")
	v.SetDefault("theme.dir", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("fetch.timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if _, err := printurl.ParseMode(cfg.Site.Permalinks); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	return nil
}

// SiteSettings returns the catalog settings described by the site section.
func (c *Config) SiteSettings() site.Settings {
	mode, _ := printurl.ParseMode(c.Site.Permalinks)
	return site.Settings{
		Name:          c.Site.Name,
		BaseURL:       c.Site.BaseURL,
		Mode:          mode,
		TrailingSlash: c.Site.TrailingSlash,
		Terms:         c.Site.Terms,
	}
}

// Lookup implements options.Store over the loaded configuration, so the
// print options blob lives under the "wpf" section of the config file.
func (c *Config) Lookup(key string) (map[string]any, bool) {
	if c.v == nil || !c.v.IsSet(key) {
		return nil, false
	}
	return c.v.GetStringMap(key), true
}

// PrintOptions loads the validated print options for registered post types.
func (c *Config) PrintOptions(registered []string) options.Options {
	return options.Load(c, registered)
}
