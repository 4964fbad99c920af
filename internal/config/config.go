package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Storage
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Receipts
	ReceiptStoragePath string `mapstructure:"RECEIPT_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8347)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "data/kiosco.db")
	viper.SetDefault("RECEIPT_STORAGE_PATH", "data/tickets")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
