// Package config loads cropcal settings from flags, environment, an optional
// .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. CROPCAL_DB.
	EnvPrefix = "CROPCAL"

	// DefaultListen is used when neither listen nor PORT is set.
	DefaultListen = ":8000"

	configName = "cropcal"
	dotEnvFile = ".env"
)

// Config is the resolved configuration.
type Config struct {
	DB                string  `mapstructure:"db"`
	Listen            string  `mapstructure:"listen"`
	Keywords          string  `mapstructure:"keywords"`
	Dictionary        string  `mapstructure:"dictionary"`
	DefaultStartMonth string  `mapstructure:"default_start_month"`
	Logging           Logging `mapstructure:"logging"`
	Cache             Cache   `mapstructure:"cache"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Cache toggles the plan cache.
type Cache struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	v.SetDefault("db", filepath.Join(home, ".cropcal", "calendar.db"))
	v.SetDefault("listen", "")
	v.SetDefault("keywords", "")
	v.SetDefault("dictionary", "")
	v.SetDefault("default_start_month", "June")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("cache.enabled", true)
}

// Load resolves configuration into a Config. file names an explicit config
// file; when empty, cropcal.yaml is searched in $HOME/.config/cropcal and the
// working directory, and a missing file is not an error. A .env file in the
// working directory is applied first without overriding the environment.
func Load(v *viper.Viper, file string) (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
		if port := os.Getenv("PORT"); port != "" {
			cfg.Listen = ":" + port
		}
	}
	cfg.DB = ExpandPath(cfg.DB)
	cfg.Keywords = ExpandPath(cfg.Keywords)
	cfg.Dictionary = ExpandPath(cfg.Dictionary)
	return &cfg, nil
}

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	return os.ExpandEnv(path)
}
