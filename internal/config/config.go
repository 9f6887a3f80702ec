package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Email          string        `mapstructure:"email"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	HistoryLimit   int           `mapstructure:"history_limit"`
	ConfigDir      string        `mapstructure:"config_dir"`
	DBPath         string        `mapstructure:"db_path"`
	LogPath        string        `mapstructure:"log_path"`
}

func Default() Config {
	configDir := filepath.Join(userConfigDir(), "bridgetui")
	return Config{
		BaseURL:        "http://localhost:9000",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		HistoryLimit:   200,
		ConfigDir:      configDir,
		DBPath:         filepath.Join(configDir, "history.db"),
		LogPath:        filepath.Join(configDir, "debug.log"),
	}
}

// Load layers an optional config file and BRIDGE_* environment variables
// over Default. An empty path looks for config.{yaml,toml,json} in the
// config dir; a missing file there is not an error.
func Load(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("username", def.Username)
	v.SetDefault("password", def.Password)
	v.SetDefault("email", def.Email)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("history_limit", def.HistoryLimit)
	v.SetDefault("config_dir", def.ConfigDir)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_path", def.LogPath)

	v.SetEnvPrefix("bridge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(def.ConfigDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
