package config

import "time"

// AdvisoryConfig contains configuration for the AI advisory feature that
// drafts root-cause analyses and narrates indicator summaries.
type AdvisoryConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Provider string `mapstructure:"provider" yaml:"provider"` // "openai"

	OpenAI OpenAIConfig `mapstructure:"openai" yaml:"openai"`

	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	Cache CacheStrategyConfig `mapstructure:"cache_strategy" yaml:"cache_strategy"`
}

// OpenAIConfig contains OpenAI-specific configuration.
type OpenAIConfig struct {
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"` // Can use ${ENV_VAR} syntax
	Model       string  `mapstructure:"model" yaml:"model"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
	TTSModel    string  `mapstructure:"tts_model" yaml:"tts_model"`
	TTSVoice    string  `mapstructure:"tts_voice" yaml:"tts_voice"`
}

// CacheStrategyConfig defines caching behavior for advisory responses.
type CacheStrategyConfig struct {
	Enabled               bool `mapstructure:"enabled" yaml:"enabled"`
	TTL                   int  `mapstructure:"ttl" yaml:"ttl"` // seconds
	UseValkeyForFastCache bool `mapstructure:"use_valkey_for_fast_cache" yaml:"use_valkey_for_fast_cache"`
}

// DefaultAdvisoryConfig returns sensible defaults for the advisory feature.
func DefaultAdvisoryConfig() AdvisoryConfig {
	return AdvisoryConfig{
		Enabled:  false, // Disabled by default, must be explicitly enabled
		Provider: "openai",
		OpenAI: OpenAIConfig{
			APIKey:      "${OPENAI_API_KEY}",
			Model:       "gpt-4o-mini",
			MaxTokens:   1000,
			Temperature: 0.4,
			TTSModel:    "gpt-4o-mini-tts",
			TTSVoice:    "alloy",
		},
		Timeout: 30 * time.Second,
		Cache: CacheStrategyConfig{
			Enabled:               true,
			TTL:                   3600, // 1 hour
			UseValkeyForFastCache: true,
		},
	}
}
