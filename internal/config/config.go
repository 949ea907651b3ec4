package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerAddr      string `mapstructure:"SERVER_ADDR"`
	BaseURL         string `mapstructure:"BASE_URL"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DatabaseDialect string `mapstructure:"DATABASE_DIALECT"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenSecret     string `mapstructure:"TOKEN_SECRET"`
	TokenTTLHours   int    `mapstructure:"TOKEN_TTL_HOURS"`
	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUser        string `mapstructure:"SMTP_USER"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	MailFrom        string `mapstructure:"MAIL_FROM"`
	AvatarDir       string `mapstructure:"AVATAR_DIR"`
}

// Load reads the configuration from a .env file and environment variables.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_DIALECT", "postgres")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("AVATAR_DIR", "static/img")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
