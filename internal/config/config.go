// Package config loads runtime settings with the usual precedence:
// flags > ONCOMAPA_* environment variables > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything the program needs outside the datasets themselves.
type Config struct {
	// MetricsPath points at the parent application's JSON export. Empty is
	// allowed: the map renders with no-data styling everywhere.
	MetricsPath string `mapstructure:"metrics_path"`

	LogPath string `mapstructure:"log_path"`
	Debug   bool   `mapstructure:"debug"`

	// Detail-panel capability switches; together they replace what used to
	// be three separately maintained component variants.
	ShowCharts         bool `mapstructure:"show_charts"`
	ShowEstablishments bool `mapstructure:"show_establishments"`
	ShowRiskTiers      bool `mapstructure:"show_risk_tiers"`
	IPSMode            bool `mapstructure:"ips_mode"`
}

// Load builds a Config, optionally merging a YAML file. The returned viper
// instance is the one flags should be bound against before calling.
func Load(v *viper.Viper, file string) (*Config, error) {
	v.SetDefault("metrics_path", "")
	v.SetDefault("log_path", "oncomapa.log")
	v.SetDefault("debug", false)
	v.SetDefault("show_charts", true)
	v.SetDefault("show_establishments", false)
	v.SetDefault("show_risk_tiers", false)
	v.SetDefault("ips_mode", false)

	v.SetEnvPrefix("ONCOMAPA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = "oncomapa.log"
	}
	return &cfg, nil
}
