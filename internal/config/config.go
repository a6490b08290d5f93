package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Import   ImportConfig   `mapstructure:"import"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Locales  LocalesConfig  `mapstructure:"locales"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type AuthConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	TokenExpiry int    `mapstructure:"token_expiry"`
}

// ImportConfig tunes the translation reconciliation engine.
type ImportConfig struct {
	BatchSize   int  `mapstructure:"batch_size"`
	CheckLocale bool `mapstructure:"check_locale"`
	CheckPlural bool `mapstructure:"check_plural"`
}

// StatsConfig controls the aggregate refresh job.
type StatsConfig struct {
	RefreshCron string `mapstructure:"refresh_cron"`
}

// LocalesConfig points at the locale catalog seed file.
type LocalesConfig struct {
	SeedPath string `mapstructure:"seed_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from ./configs/config.yaml plus environment
// overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Import.BatchSize <= 0 {
		return nil, fmt.Errorf("import.batch_size must be positive, got %d", cfg.Import.BatchSize)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.mode", "development")

	viper.SetDefault("database.path", "./data/commtrans.db")
	viper.SetDefault("database.migrations_path", "./migrations")
	viper.SetDefault("database.max_connections", 10)

	viper.SetDefault("auth.enabled", true)
	viper.SetDefault("auth.token_expiry", 86400)

	viper.SetDefault("import.batch_size", 50)
	viper.SetDefault("import.check_locale", false)
	viper.SetDefault("import.check_plural", false)

	viper.SetDefault("stats.refresh_cron", "0 3 * * *")
	viper.SetDefault("locales.seed_path", "./configs/locales.yaml")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
