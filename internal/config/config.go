package config

import (
	"github.com/spf13/viper"
)

// Config concentra tudo que o processo lê de ambiente.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	GoogleGeocodeAPIKey string `mapstructure:"GOOGLE_GEOCODE_API_KEY"`

	AdminUser     string `mapstructure:"ADMIN_USER"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	RabbitUser string `mapstructure:"RABBITMQ_USER"`
	RabbitPass string `mapstructure:"RABBITMQ_PASS"`
	RabbitHost string `mapstructure:"RABBITMQ_HOST"`
	RabbitPort string `mapstructure:"RABBITMQ_PORT"`

	MailHost string `mapstructure:"MAIL_HOST"`
	MailPort int    `mapstructure:"MAIL_PORT"`
	MailUser string `mapstructure:"MAIL_USER"`
	MailPass string `mapstructure:"MAIL_PASS"`

	Env string `mapstructure:"APP_ENV"`
}

// LoadConfig lê a configuração das variáveis de ambiente.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ADMIN_USER", "admin")
	viper.SetDefault("RABBITMQ_USER", "guest")
	viper.SetDefault("RABBITMQ_PASS", "guest")
	viper.SetDefault("RABBITMQ_HOST", "localhost")
	viper.SetDefault("RABBITMQ_PORT", "5672")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("APP_ENV", "development")
	viper.AutomaticEnv()

	// Bind explícito para os campos aparecerem no Unmarshal
	for _, key := range []string{
		"SERVER_PORT", "DATABASE_URL", "GOOGLE_GEOCODE_API_KEY",
		"ADMIN_USER", "ADMIN_PASSWORD",
		"RABBITMQ_USER", "RABBITMQ_PASS", "RABBITMQ_HOST", "RABBITMQ_PORT",
		"MAIL_HOST", "MAIL_PORT", "MAIL_USER", "MAIL_PASS",
		"APP_ENV",
	} {
		_ = viper.BindEnv(key)
	}

	err = viper.Unmarshal(&config)
	return
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
