// Package config provides Viper-based configuration loading for the word
// game server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	// Host is the bind address for the gateway listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the gateway listener.
	Port int `mapstructure:"port"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// WordsConfig holds word data overrides. Empty paths use the embedded
// defaults.
type WordsConfig struct {
	// DictionaryFile overrides the embedded gameplay dictionary.
	DictionaryFile string `mapstructure:"dictionary_file"`
	// SourceWordsFile overrides the embedded classic-mode source pool.
	SourceWordsFile string `mapstructure:"source_words_file"`
	// RiddlesFile overrides the embedded teaser riddles (YAML).
	RiddlesFile string `mapstructure:"riddles_file"`
}

// DictionaryConfig holds the external dictionary lookup settings.
type DictionaryConfig struct {
	// LookupURL is the base URL of the word lookup endpoint; empty
	// disables remote lookups (heuristic only).
	LookupURL string `mapstructure:"lookup_url"`
	// LookupTimeout bounds one remote lookup before falling back to the
	// lenient heuristic.
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Words      WordsConfig      `mapstructure:"words"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDictionary(c.Dictionary); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDictionary(d DictionaryConfig) error {
	if d.LookupTimeout <= 0 {
		return fmt.Errorf("dictionary.lookup_timeout must be > 0, got %s", d.LookupTimeout)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with WORDRUSH_ prefix
	v.SetEnvPrefix("WORDRUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always unmarshal and validate cleanly.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("words.dictionary_file", "")
	v.SetDefault("words.source_words_file", "")
	v.SetDefault("words.riddles_file", "")

	v.SetDefault("dictionary.lookup_url", "")
	v.SetDefault("dictionary.lookup_timeout", "2s")
}
