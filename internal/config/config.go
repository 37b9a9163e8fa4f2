package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rewired-gh/nlgen/internal/nlg"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Bank      BankConfig      `mapstructure:"bank" yaml:"bank"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
	Telegram  TelegramConfig  `mapstructure:"telegram" yaml:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// GeneratorConfig holds the default classification settings.
// Threshold and sensitiveness are percentage points.
type GeneratorConfig struct {
	Sensitiveness float64 `mapstructure:"sensitiveness" yaml:"sensitiveness"`
	Threshold     float64 `mapstructure:"threshold" yaml:"threshold"`
	Precision     int     `mapstructure:"precision" yaml:"precision"`
	DataType      string  `mapstructure:"data_type" yaml:"data_type"`
}

// BankConfig holds template bank location and caching
type BankConfig struct {
	Path     string        `mapstructure:"path" yaml:"path"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// ReportConfig holds batch report behavior
type ReportConfig struct {
	TopK int `mapstructure:"top_k" yaml:"top_k"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token" yaml:"bot_token"`
	ChatID         string        `mapstructure:"chat_id" yaml:"chat_id"`
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base" yaml:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from file and environment variables.
// An empty path skips the file and yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Enable environment variable override, e.g. NLGEN_GENERATOR_DATA_TYPE
	v.SetEnvPrefix("NLGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Generator defaults
	v.SetDefault("generator.sensitiveness", nlg.DefaultSensitiveness)
	v.SetDefault("generator.threshold", nlg.DefaultThreshold)
	v.SetDefault("generator.precision", nlg.DefaultPrecision)
	v.SetDefault("generator.data_type", nlg.DefaultDataType)

	// Bank defaults
	v.SetDefault("bank.path", "./configs/sentences.json")
	v.SetDefault("bank.cache_ttl", "10m")

	// Report defaults
	v.SetDefault("report.top_k", 10)

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Generator config
	if c.Generator.Sensitiveness <= 0 {
		return fmt.Errorf("generator.sensitiveness must be positive")
	}
	if c.Generator.Threshold < 0 {
		return fmt.Errorf("generator.threshold must not be negative")
	}
	if c.Generator.Precision < 0 || c.Generator.Precision > 10 {
		return fmt.Errorf("generator.precision must be between 0 and 10")
	}
	if c.Generator.DataType == "" {
		return fmt.Errorf("generator.data_type is required")
	}

	// Validate Bank config
	if c.Bank.Path == "" {
		return fmt.Errorf("bank.path is required")
	}
	if c.Bank.CacheTTL < 0 {
		return fmt.Errorf("bank.cache_ttl must not be negative")
	}

	// Validate Report config
	if c.Report.TopK < 1 {
		return fmt.Errorf("report.top_k must be at least 1")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Settings returns the generator defaults as nlg settings
func (c *Config) Settings() nlg.Settings {
	return nlg.Settings{
		Sensitiveness: c.Generator.Sensitiveness,
		Threshold:     c.Generator.Threshold,
		Precision:     c.Generator.Precision,
		DataType:      c.Generator.DataType,
	}
}
