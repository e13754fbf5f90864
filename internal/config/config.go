package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Env           string `mapstructure:"ENV"`
	MappingsDir   string `mapstructure:"MAPPINGS_DIR"`
	OutputDir     string `mapstructure:"OUTPUT_DIR"`
	Sink          string `mapstructure:"SINK"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32  `mapstructure:"DB_MIN_CONNS"`
	StrictMapping bool   `mapstructure:"STRICT_MAPPINGS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("MAPPINGS_DIR", "./mappings")
	v.SetDefault("SINK", "parquet")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("STRICT_MAPPINGS", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("MAPPINGS_DIR")
	v.BindEnv("OUTPUT_DIR")
	v.BindEnv("SINK")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("STRICT_MAPPINGS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is runnable: the sink must be a
// known backend, and the postgres sink needs a connection string.
func (c *Config) Validate() error {
	switch c.Sink {
	case "parquet", "postgres":
	default:
		return fmt.Errorf("SINK must be \"parquet\" or \"postgres\", got %q", c.Sink)
	}
	if c.Sink == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when SINK is \"postgres\"")
	}
	return nil
}
