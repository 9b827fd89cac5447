// Package config loads idea-go settings from a YAML file and IDEA_*
// environment variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"

	"idea-go/pkg/appdir"

	"github.com/spf13/viper"
)

type Config struct {
	Key         string `mapstructure:"key"`   // hex, 16 bytes
	Nonce       string `mapstructure:"nonce"` // hex, 4 bytes
	Workers     int    `mapstructure:"workers"`
	Compression string `mapstructure:"compression"`
	LogDB       string `mapstructure:"log_db"`
	ConsoleLog  bool   `mapstructure:"console_log"`
	Debug       bool   `mapstructure:"debug"`
	ConfigFile  string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:     1, // sequential CTR
		Compression: "zstd",
		LogDB:       "logs.db",
		ConsoleLog:  false,
		ConfigFile:  "idea.yaml",
	}
}

// LoadConfig reads configFile if given, otherwise looks for idea.yaml in the
// working directory, /etc/idea-go/ and the application directory. Missing
// default files are not an error; a missing explicit file is. Environment
// variables (IDEA_KEY, IDEA_NONCE, IDEA_WORKERS, ...) override file values.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("key", cfg.Key)
	v.SetDefault("nonce", cfg.Nonce)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("compression", cfg.Compression)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("console_log", cfg.ConsoleLog)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("config_file", cfg.ConfigFile)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("idea")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/idea-go/")
		v.AddConfigPath(appdir.AppDir())
	}
	v.SetEnvPrefix("IDEA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("config: workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}
