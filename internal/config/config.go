// Package config manages application configuration from config.yaml,
// BOT_* environment variables, and default values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_TELEGRAM_TOKEN) or
// through a YAML config file.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Bot      BotConfig      `mapstructure:"bot"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram API settings.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// OpenAIConfig holds completion service settings. The base URL may point at
// any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	Token   string        `mapstructure:"token"    validate:"required"`
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Model   string        `mapstructure:"model"    validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"required,min=1s,max=10m"`
}

// BotConfig holds user-facing bot behavior settings.
type BotConfig struct {
	Messages BotMessages `mapstructure:"messages"`
}

// BotMessages defines the fixed texts the bot sends. Greeting defaults to a
// message embedding the configured model name when left empty.
type BotMessages struct {
	Greeting        string `mapstructure:"greeting"`
	CompletionError string `mapstructure:"completion_error" validate:"required"`
}

// Load reads configuration in order of precedence:
// 1. BOT_* environment variables
// 2. the config file at path (optional)
// 3. default values
//
// Returns the validated configuration or an error if loading or validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow a missing config file; env and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Bot.Messages.Greeting == "" {
		cfg.Bot.Messages.Greeting = fmt.Sprintf(
			"Hello! I'm an AI assistant bot using %s. Mention me (@bot_username) in a message to talk to me.",
			cfg.OpenAI.Model)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	// Required values default to empty so the keys are known to viper and
	// can be supplied through BOT_* environment variables alone.
	v.SetDefault("telegram.token", "")

	v.SetDefault("openai.token", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.timeout", 2*time.Minute)

	v.SetDefault("bot.messages.greeting", "")
	v.SetDefault("bot.messages.completion_error",
		"Sorry, I encountered an error while processing your request.")
}
