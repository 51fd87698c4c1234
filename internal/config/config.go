package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM LLMConfig
	Log LogConfig
}

// LLMConfig holds the chat provider configuration
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

const (
	DefaultModel       = "models/gemini-2.5-flash"
	DefaultTemperature = 0.7
)

// Load loads the configuration from config.yaml in the working directory, or
// from the file named by CONFIG_PATH. Environment variables override file
// values, and a .env file is honored before anything else is read. The config
// file is optional when the environment supplies everything needed.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/chatbot.log")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	// GEMINI_API_KEY matches the original .env convention; OPENAI_API_KEY is
	// honored for the openai provider.
	_ = v.BindEnv("llm.api_key", "GEMINI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm.base_url", "LLM_BASE_URL")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
