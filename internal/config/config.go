// Package config loads the build configuration with viper: defaults, then a
// YAML config file, then SITE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

const (
	// DefaultOutputDir is where the built site is written.
	DefaultOutputDir = "public"

	// DefaultServeAddr is the address the dev server listens on.
	DefaultServeAddr = "localhost:8000"

	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "SITE"
)

// ErrMissingOutputDir is returned by Validate when no output directory is
// configured.
var ErrMissingOutputDir = errors.New("output directory must not be empty")

// Config is the whole build configuration.
type Config struct {
	SiteMetadata pagedata.SiteMetadata `mapstructure:"siteMetadata"`

	// PathPrefix is prepended to every site URL when the site is not
	// hosted at the root of its domain. It has no trailing slash.
	PathPrefix string `mapstructure:"pathPrefix"`

	// OutputDir is where the built site is written.
	OutputDir string `mapstructure:"outputDir"`

	// SourceDir, when set, is a directory laid out like the embedded web
	// assets (templates/, content/, static/). The build reads from it
	// instead of the embedded copy, and the dev server watches it.
	SourceDir string `mapstructure:"sourceDir"`

	Log   LogConfig   `mapstructure:"log"`
	Serve ServeConfig `mapstructure:"serve"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServeConfig configures the dev server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration. An empty path searches for config.yaml in
// the working directory, and a missing file is not an error in that case;
// an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.PathPrefix = NormalizePathPrefix(cfg.PathPrefix)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Log:       LogConfig{Level: "info", Format: "text"},
		Serve:     ServeConfig{Addr: DefaultServeAddr},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("pathPrefix", def.PathPrefix)
	v.SetDefault("outputDir", def.OutputDir)
	v.SetDefault("sourceDir", def.SourceDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("serve.addr", def.Serve.Addr)
}

// Validate reports configuration that cannot produce a site.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	if err := pagedata.ValidateMenu(c.SiteMetadata.MenuLinks); err != nil {
		return fmt.Errorf("invalid siteMetadata.menuLinks: %w", err)
	}
	return nil
}

// NormalizePathPrefix returns prefix with a leading slash and no trailing
// slash, or "" for a site hosted at the domain root.
func NormalizePathPrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
