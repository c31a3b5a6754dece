package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

// NarrationPrefix is prepended to every text-to-speech input so read-outs
// keep a consistent register.
const NarrationPrefix = "Say clearly and professionally: "

// AdvisoryService is the gateway to the AI provider that drafts root-cause
// analyses and narrates indicator summaries. Failures are advisory-only:
// callers degrade to a retryable error surface, never a crash.
type AdvisoryService interface {
	// Suggest asks for 3 root causes and 3 corrective actions for an
	// underperforming indicator.
	Suggest(ctx context.Context, snapshot models.IndicatorSnapshot) (*SuggestionResult, error)

	// Narrate converts text to MP3 audio. The narration prefix is applied
	// by the provider.
	Narrate(ctx context.Context, text string) ([]byte, error)

	// GetProviderName returns the name of the AI provider (e.g. "openai").
	GetProviderName() string

	// GetModelName returns the model name being used.
	GetModelName() string
}

// SuggestionResult carries the structured suggestion plus call metadata.
type SuggestionResult struct {
	Suggestion  *models.AdvisorySuggestion `json:"suggestion"`
	Provider    string                     `json:"provider"`
	Model       string                     `json:"model"`
	TokensUsed  int                        `json:"tokensUsed"`
	GeneratedAt time.Time                  `json:"generatedAt"`
	Cached      bool                       `json:"cached"`
}

// NewAdvisoryService creates an AdvisoryService based on configuration.
func NewAdvisoryService(cfg config.AdvisoryConfig, log logger.Logger) (AdvisoryService, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("advisory service is disabled in configuration")
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIAdvisoryProvider(cfg.OpenAI, cfg.Timeout, log)
	default:
		return nil, fmt.Errorf("unsupported advisory provider: %s", cfg.Provider)
	}
}

// CachedAdvisoryService wraps an AdvisoryService with Valkey-backed caching.
// Suggestions and narration audio for identical inputs are served from cache
// within the TTL, so repeated dashboard visits do not re-bill the provider.
type CachedAdvisoryService struct {
	underlying   AdvisoryService
	valkeyCache  cache.Valkey
	cacheEnabled bool
	cacheTTL     time.Duration
	logger       logger.Logger
}

func NewCachedAdvisoryService(underlying AdvisoryService, cfg config.CacheStrategyConfig, valkeyCache cache.Valkey, log logger.Logger) *CachedAdvisoryService {
	return &CachedAdvisoryService{
		underlying:   underlying,
		valkeyCache:  valkeyCache,
		cacheEnabled: cfg.Enabled && cfg.UseValkeyForFastCache,
		cacheTTL:     time.Duration(cfg.TTL) * time.Second,
		logger:       log,
	}
}

// Suggest implements AdvisoryService with caching.
func (c *CachedAdvisoryService) Suggest(ctx context.Context, snapshot models.IndicatorSnapshot) (*SuggestionResult, error) {
	cacheKey := c.suggestCacheKey(snapshot)

	if c.cacheEnabled && c.valkeyCache != nil {
		if data, err := c.valkeyCache.Get(ctx, cacheKey); err == nil {
			var cached SuggestionResult
			if err := json.Unmarshal(data, &cached); err == nil && cached.Suggestion != nil {
				c.logger.Info("Advisory suggestion cache hit", "cache_key", cacheKey)
				cached.Cached = true
				return &cached, nil
			}
		}
	}

	c.logger.Info("Advisory suggestion cache miss, calling provider", "provider", c.underlying.GetProviderName())
	start := time.Now()
	result, err := c.underlying.Suggest(ctx, snapshot)
	metrics.AdvisoryRequestDuration.WithLabelValues("suggest", c.underlying.GetProviderName()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.valkeyCache != nil {
		if err := c.valkeyCache.Set(ctx, cacheKey, result, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache advisory suggestion", "error", err)
		}
	}

	result.Cached = false
	return result, nil
}

// Narrate implements AdvisoryService with caching of the audio bytes.
func (c *CachedAdvisoryService) Narrate(ctx context.Context, text string) ([]byte, error) {
	cacheKey := c.narrateCacheKey(text)

	if c.cacheEnabled && c.valkeyCache != nil {
		if audio, err := c.valkeyCache.Get(ctx, cacheKey); err == nil && len(audio) > 0 {
			c.logger.Info("Advisory narration cache hit", "cache_key", cacheKey)
			return audio, nil
		}
	}

	start := time.Now()
	audio, err := c.underlying.Narrate(ctx, text)
	metrics.AdvisoryRequestDuration.WithLabelValues("narrate", c.underlying.GetProviderName()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.valkeyCache != nil {
		if err := c.valkeyCache.Set(ctx, cacheKey, audio, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache advisory narration", "error", err)
		}
	}

	return audio, nil
}

// GetProviderName returns the underlying provider name.
func (c *CachedAdvisoryService) GetProviderName() string {
	return c.underlying.GetProviderName()
}

// GetModelName returns the underlying model name.
func (c *CachedAdvisoryService) GetModelName() string {
	return c.underlying.GetModelName()
}

func (c *CachedAdvisoryService) suggestCacheKey(snapshot models.IndicatorSnapshot) string {
	payload, _ := json.Marshal(snapshot)
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("advisory:suggest:%x", hash[:16])
}

func (c *CachedAdvisoryService) narrateCacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return fmt.Sprintf("advisory:tts:%x", hash[:16])
}
