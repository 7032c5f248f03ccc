// Package config loads studyfocus settings from flags, STUDYFOCUS_* env vars,
// a YAML file and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/studyfocus/internal/apiclient"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

const EnvPrefix = "STUDYFOCUS"

type Config struct {
	Backend domain.Backend `mapstructure:"backend" validate:"oneof=local remote"`
	DBPath  string         `mapstructure:"db_path" validate:"required"`
	API     APIConfig      `mapstructure:"api"`
	Timer   TimerConfig    `mapstructure:"timer"`
	Review  ReviewConfig   `mapstructure:"review"`
	Server  ServerConfig   `mapstructure:"server"`
	Log     LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"omitempty,url"`
	Token      string `mapstructure:"token"`
	TimeoutMs  int    `mapstructure:"timeout_ms" validate:"gt=0"`
	MaxRetries int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

type TimerConfig struct {
	RequireSubject  bool `mapstructure:"require_subject"`
	DriftCorrection bool `mapstructure:"drift_correction"`
	Bell            bool `mapstructure:"bell"`
}

type ReviewConfig struct {
	// RequeueAfter is how long a reviewed card stays out of the local due list.
	RequeueAfter time.Duration `mapstructure:"requeue_after" validate:"gt=0"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr" validate:"required"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

// APIClientConfig adapts the api section for apiclient.New.
func (c *Config) APIClientConfig() apiclient.Config {
	return apiclient.Config{
		BaseURL:    c.API.BaseURL,
		Token:      c.API.Token,
		TimeoutMs:  c.API.TimeoutMs,
		MaxRetries: c.API.MaxRetries,
	}
}

// Dir is the per-user state directory, ~/.studyfocus.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".studyfocus"), nil
}

// flagKeys maps persistent flag names onto config keys.
var flagKeys = map[string]string{
	"backend":   "backend",
	"db":        "db_path",
	"api-url":   "api.base_url",
	"log-level": "log.level",
}

// Load reads the configuration. file overrides the default
// ~/.studyfocus/config.yaml; a missing default file is not an error.
// flags may be nil.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	api := apiclient.DefaultConfig()

	v.SetDefault("backend", string(domain.BackendLocal))
	v.SetDefault("db_path", filepath.Join(dir, "studyfocus.db"))
	v.SetDefault("api.base_url", api.BaseURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout_ms", api.TimeoutMs)
	v.SetDefault("api.max_retries", api.MaxRetries)
	v.SetDefault("timer.require_subject", true)
	v.SetDefault("timer.drift_correction", false)
	v.SetDefault("timer.bell", true)
	v.SetDefault("review.requeue_after", "24h")
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(c.Log.Level)
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Backend == domain.BackendRemote && c.API.BaseURL == "" {
		return errors.New("invalid config: api.base_url is required for the remote backend")
	}
	return nil
}
