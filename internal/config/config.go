package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Opsview    OpsviewConfig    `mapstructure:"opsview"`
	ServiceNow ServiceNowConfig `mapstructure:"servicenow"`
	Sync       SyncConfig       `mapstructure:"sync"`
}

type OpsviewConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ServiceNowConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type SyncConfig struct {
	DryRun bool `mapstructure:"dry_run"`
	Force  bool `mapstructure:"force"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Credentials can also come from the environment.
	if cfg.Opsview.Password == "" {
		cfg.Opsview.Password = os.Getenv("OVSYNC_OPSVIEW_PASSWORD")
	}
	if cfg.ServiceNow.Password == "" {
		cfg.ServiceNow.Password = os.Getenv("OVSYNC_SERVICENOW_PASSWORD")
	}

	return cfg, nil
}
