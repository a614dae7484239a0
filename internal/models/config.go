package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type RemoteConfig struct {
	// Driver selects the remote store backend: "none", "redis" or "postgres".
	Driver   string `mapstructure:"driver"`
	Addr     string `mapstructure:"addr"`     // redis host:port
	Password string `mapstructure:"password"` // redis auth, optional
	DB       int    `mapstructure:"db"`       // redis database index
	DSN      string `mapstructure:"dsn"`      // postgres connection string
}

type Config struct {
	DataDir       string        `mapstructure:"data_dir"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	DefaultResort string        `mapstructure:"default_resort"`
	Remote        RemoteConfig  `mapstructure:"remote"`
}

func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".beachsync")
	}

	viper.SetEnvPrefix("beachsync")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("poll_interval", 2*time.Second)
	viper.SetDefault("default_resort", "susurros")
	viper.SetDefault("remote.driver", "none")

	// The config file is optional; every key has a usable default. A path
	// given explicitly must exist, though.
	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// Bound-but-unset flags can shadow the defaults above with zero values.
	if config.DataDir == "" {
		config.DataDir = defaultDataDir()
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}
	if config.DefaultResort == "" {
		config.DefaultResort = "susurros"
	}
	if config.Remote.Driver == "" {
		config.Remote.Driver = "none"
	}

	return &config, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".beachsync"
	}
	return filepath.Join(home, ".beachsync", "data")
}
