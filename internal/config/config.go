package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Store — single-file SQLite database
	DBPath string `mapstructure:"DB_PATH"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	MaxLoginAttempts   int    `mapstructure:"MAX_LOGIN_ATTEMPTS"`

	// Backup
	BackupDir           string `mapstructure:"BACKUP_DIR"`
	BackupIntervalHours int    `mapstructure:"BACKUP_INTERVAL_HOURS"`
	BackupRetentionDays int    `mapstructure:"BACKUP_RETENTION_DAYS"`

	// Audit
	AuditRetentionDays int `mapstructure:"AUDIT_RETENTION_DAYS"`

	// Reports
	ReportStoragePath string `mapstructure:"REPORT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_PATH", "trade_enterprise.db")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("MAX_LOGIN_ATTEMPTS", 5)
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_INTERVAL_HOURS", 24)
	viper.SetDefault("BACKUP_RETENTION_DAYS", 30)
	viper.SetDefault("AUDIT_RETENTION_DAYS", 90)
	viper.SetDefault("REPORT_STORAGE_PATH", "/tmp/tradecore/reports")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
