package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Appliance Support Bot specifics
	Telegram TelegramConfig
	Gemini   GeminiConfig
	Mantis   MantisConfig
	Session  SessionConfig
	Webhook  WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type MantisConfig struct {
	URL         string
	APIToken    string
	CloseStatus int // numeric Mantis status id applied when closing a ticket
}

type SessionConfig struct {
	DBPath         string
	TimeoutSeconds int
}

type WebhookConfig struct {
	RateLimitPerMin int
	DedupeWindowSec int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Gemini
	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	// MantisHub
	cfg.Mantis.URL = viper.GetString("mantis.url")
	cfg.Mantis.APIToken = viper.GetString("mantis.api_token")
	cfg.Mantis.CloseStatus = viper.GetInt("mantis.close_status")
	if mantisURL := viper.GetString("mantis_url"); mantisURL != "" {
		cfg.Mantis.URL = mantisURL
	}
	if mantisToken := viper.GetString("mantis_api_token"); mantisToken != "" {
		cfg.Mantis.APIToken = mantisToken
	}

	// Session store
	cfg.Session.DBPath = viper.GetString("session.db_path")
	cfg.Session.TimeoutSeconds = viper.GetInt("session.timeout_seconds")

	// Webhook hardening
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.DedupeWindowSec = viper.GetInt("webhook.dedupe_window_sec")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("mantis.close_status", 90)
	viper.SetDefault("session.db_path", "data/support-bot.db")
	viper.SetDefault("session.timeout_seconds", 600)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.dedupe_window_sec", 300)
}
