package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Vocab     VocabConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CacheConfig holds reply-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"`
	OpenAI int `mapstructure:"openai"`
}

// MatchingConfig holds the tunable constants of the dislike matching
// pipeline. The thresholds are empirical; change them only with test
// coverage backing the new values.
type MatchingConfig struct {
	AcceptThreshold    float64 `mapstructure:"accept_threshold"`
	PrefixBoost        float64 `mapstructure:"prefix_boost"`
	MinClarifyLength   int     `mapstructure:"min_clarify_length"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// VocabConfig holds the word lists used by normalisation and extraction.
// They are configuration data so new brands or feature-complaint terms can
// be added without touching matching logic.
type VocabConfig struct {
	Brands          []string `mapstructure:"brands"`
	FillerWords     []string `mapstructure:"filler_words"`
	FeatureKeywords []string `mapstructure:"feature_keywords"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cinda/")

	// Environment variable settings
	v.SetEnvPrefix("CINDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// OpenAI defaults
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4-turbo")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.openai", 500)

	// Matching defaults: accept at 0.8 similarity, boost prefix matches
	// to 0.9, clarify only candidates longer than 2 characters
	v.SetDefault("matching.accept_threshold", 0.8)
	v.SetDefault("matching.prefix_boost", 0.9)
	v.SetDefault("matching.min_clarify_length", 3)
	v.SetDefault("matching.enable_debug_logging", false)

	// Vocabulary defaults. Brands are listed longest first so multi-word
	// brands are stripped before their shorter overlaps.
	v.SetDefault("vocab.brands", []string{
		"new balance", "on running", "hoka", "nike",
		"asics", "saucony", "puma", "adidas",
	})
	v.SetDefault("vocab.filler_words", []string{
		"the", "a", "an", "shoe", "shoes", "model",
	})
	v.SetDefault("vocab.feature_keywords", []string{
		"lace", "laces", "fit", "fits", "colour", "color",
		"price", "cost", "style", "look", "looks", "pattern", "upper",
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set CINDA_OPENAI_API_KEY)")
	}

	if config.Matching.AcceptThreshold <= 0 || config.Matching.AcceptThreshold > 1 {
		return fmt.Errorf("matching accept threshold must be in (0,1], got: %v", config.Matching.AcceptThreshold)
	}

	if config.Matching.PrefixBoost <= 0 || config.Matching.PrefixBoost > 1 {
		return fmt.Errorf("matching prefix boost must be in (0,1], got: %v", config.Matching.PrefixBoost)
	}

	if len(config.Vocab.Brands) == 0 {
		return fmt.Errorf("brand vocabulary must not be empty")
	}

	return nil
}
