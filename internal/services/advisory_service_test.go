package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

type fakeAdvisoryProvider struct {
	suggestCalls int
	narrateCalls int
	fail         bool
}

func (f *fakeAdvisoryProvider) Suggest(ctx context.Context, snapshot models.IndicatorSnapshot) (*SuggestionResult, error) {
	f.suggestCalls++
	if f.fail {
		return nil, errors.New("provider down")
	}
	return &SuggestionResult{
		Suggestion: &models.AdvisorySuggestion{
			RootCauses:        []string{"staffing gap"},
			CorrectiveActions: []string{"recruit inspectors"},
			Justification:     "ML4 continuous improvement",
		},
		Provider:    "fake",
		Model:       "fake-1",
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeAdvisoryProvider) Narrate(ctx context.Context, text string) ([]byte, error) {
	f.narrateCalls++
	if f.fail {
		return nil, errors.New("provider down")
	}
	return []byte("mp3:" + text), nil
}

func (f *fakeAdvisoryProvider) GetProviderName() string { return "fake" }
func (f *fakeAdvisoryProvider) GetModelName() string    { return "fake-1" }

func cachingConfig() config.CacheStrategyConfig {
	return config.CacheStrategyConfig{Enabled: true, TTL: 60, UseValkeyForFastCache: true}
}

func testSnapshot() models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Code:         "RI-RPI-03",
		Description:  "GMP inspection coverage",
		CurrentValue: 55,
		Target:       90,
		Baseline:     60,
		Unit:         "%",
		Status:       models.StatusRedAlert,
	}
}

func TestNewAdvisoryService(t *testing.T) {
	log := logger.New("error")

	_, err := NewAdvisoryService(config.AdvisoryConfig{Enabled: false}, log)
	assert.Error(t, err)

	_, err = NewAdvisoryService(config.AdvisoryConfig{Enabled: true, Provider: "acme"}, log)
	assert.Error(t, err)

	// OpenAI provider requires a resolvable key.
	t.Setenv("OPENAI_API_KEY", "")
	_, err = NewAdvisoryService(config.AdvisoryConfig{
		Enabled:  true,
		Provider: "openai",
		OpenAI:   config.OpenAIConfig{APIKey: "${OPENAI_API_KEY}"},
	}, log)
	assert.Error(t, err)

	svc, err := NewAdvisoryService(config.AdvisoryConfig{
		Enabled:  true,
		Provider: "openai",
		OpenAI:   config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"},
		Timeout:  time.Second,
	}, log)
	require.NoError(t, err)
	assert.Equal(t, "openai", svc.GetProviderName())
	assert.Equal(t, "gpt-4o-mini", svc.GetModelName())
}

func TestCachedAdvisoryService_SuggestCachesByInput(t *testing.T) {
	log := logger.New("error")
	provider := &fakeAdvisoryProvider{}
	svc := NewCachedAdvisoryService(provider, cachingConfig(), cache.NewNoopValkeyCache(log), log)
	ctx := context.Background()

	first, err := svc.Suggest(ctx, testSnapshot())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, provider.suggestCalls)

	second, err := svc.Suggest(ctx, testSnapshot())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, provider.suggestCalls)
	assert.Equal(t, first.Suggestion, second.Suggestion)

	// A different snapshot misses the cache.
	other := testSnapshot()
	other.CurrentValue = 70
	_, err = svc.Suggest(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.suggestCalls)
}

func TestCachedAdvisoryService_SuggestPropagatesFailure(t *testing.T) {
	log := logger.New("error")
	provider := &fakeAdvisoryProvider{fail: true}
	svc := NewCachedAdvisoryService(provider, cachingConfig(), cache.NewNoopValkeyCache(log), log)

	_, err := svc.Suggest(context.Background(), testSnapshot())
	assert.Error(t, err)
}

func TestCachedAdvisoryService_NarrateCachesAudio(t *testing.T) {
	log := logger.New("error")
	provider := &fakeAdvisoryProvider{}
	svc := NewCachedAdvisoryService(provider, cachingConfig(), cache.NewNoopValkeyCache(log), log)
	ctx := context.Background()

	audio, err := svc.Narrate(ctx, "RI-RPI-03 is in red alert")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3:RI-RPI-03 is in red alert"), audio)
	assert.Equal(t, 1, provider.narrateCalls)

	again, err := svc.Narrate(ctx, "RI-RPI-03 is in red alert")
	require.NoError(t, err)
	assert.Equal(t, audio, again)
	assert.Equal(t, 1, provider.narrateCalls)
}

func TestCachedAdvisoryService_CacheDisabled(t *testing.T) {
	log := logger.New("error")
	provider := &fakeAdvisoryProvider{}
	svc := NewCachedAdvisoryService(provider, config.CacheStrategyConfig{}, cache.NewNoopValkeyCache(log), log)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, testSnapshot())
	require.NoError(t, err)
	_, err = svc.Suggest(ctx, testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.suggestCalls)
}

func TestSuggestionPrompt(t *testing.T) {
	prompt := suggestionPrompt(testSnapshot())
	assert.Contains(t, prompt, "Senior Regulatory QA Expert")
	assert.Contains(t, prompt, "RPI Code: RI-RPI-03")
	assert.Contains(t, prompt, "Current Value: 55%")
	assert.Contains(t, prompt, "Target: 90%")
	assert.Contains(t, prompt, "Status: Red Alert")
	assert.Contains(t, prompt, "root_causes")
	assert.Contains(t, prompt, "ml4_justification")
}

func TestParseSuggestion(t *testing.T) {
	payload := `{"root_causes":["a","b","c"],"corrective_actions":["x","y","z"],"ml4_justification":"because"}`

	got, err := parseSuggestion(payload)
	require.NoError(t, err)
	assert.Len(t, got.RootCauses, 3)
	assert.Equal(t, "because", got.Justification)

	fenced := "```json\n" + payload + "\n```"
	got, err = parseSuggestion(fenced)
	require.NoError(t, err)
	assert.Len(t, got.CorrectiveActions, 3)

	_, err = parseSuggestion("not json")
	assert.Error(t, err)

	_, err = parseSuggestion(`{"root_causes":[],"corrective_actions":[],"ml4_justification":""}`)
	assert.Error(t, err)
}
