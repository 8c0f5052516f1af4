package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the primary provider.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OpenAIConfig holds OpenAI API settings for the fallback provider.
type OpenAIConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ExtractConfig configures orchestration: retry policy, boundary resolution,
// and provider throttling.
type ExtractConfig struct {
	MaxAttempts            int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMS       int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	RateLimitBackoffMS     int     `yaml:"rate_limit_backoff_ms" mapstructure:"rate_limit_backoff_ms"`
	MaxBackoffMS           int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Tolerance              int     `yaml:"tolerance" mapstructure:"tolerance"`
	MaxStartWords          int     `yaml:"max_start_words" mapstructure:"max_start_words"`
	MaxEndWords            int     `yaml:"max_end_words" mapstructure:"max_end_words"`
	MinConfidenceThreshold float64 `yaml:"min_confidence_threshold" mapstructure:"min_confidence_threshold"`
	RequestsPerSecond      float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	ProfilePath            string  `yaml:"profile_path" mapstructure:"profile_path"`
}

// CacheConfig configures the bounded extraction response cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	TTLMinutes int  `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// ServerConfig configures the HTTP extraction endpoint.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NUGGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 2048)
	v.SetDefault("extract.max_attempts", 3)
	v.SetDefault("extract.initial_backoff_ms", 500)
	v.SetDefault("extract.rate_limit_backoff_ms", 2000)
	v.SetDefault("extract.max_backoff_ms", 30000)
	v.SetDefault("extract.tolerance", 2)
	v.SetDefault("extract.max_start_words", 5)
	v.SetDefault("extract.max_end_words", 5)
	v.SetDefault("extract.min_confidence_threshold", 0.8)
	v.SetDefault("extract.requests_per_second", 2.0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.capacity", 128)
	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file is optional; env + defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
