package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every process-level setting. Values come from a .env file when
// present, environment variables otherwise, with sane defaults for local
// development. Vendor API keys have no default on purpose.
type Config struct {
	AppPort              int    `mapstructure:"APP_PORT"`
	DatabasePath         string `mapstructure:"DATABASE_PATH"`
	ProjectsRoot         string `mapstructure:"PROJECTS_ROOT"`
	OpenAIAPIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL        string `mapstructure:"OPENAI_BASE_URL"`
	AnthropicAPIKey      string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL     string `mapstructure:"ANTHROPIC_BASE_URL"`
	DefaultModel         string `mapstructure:"DEFAULT_MODEL"`
	VendorTimeoutSeconds int    `mapstructure:"VENDOR_TIMEOUT_SECONDS"`
	LogLevel             string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/imagi.db")
	viper.SetDefault("PROJECTS_ROOT", "/data/projects")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	viper.SetDefault("DEFAULT_MODEL", "claude-3-7-sonnet")
	viper.SetDefault("VENDOR_TIMEOUT_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
