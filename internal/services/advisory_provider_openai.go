package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/monitoring"
	"github.com/regsight/regsight-core/pkg/logger"
)

// OpenAIAdvisoryProvider implements AdvisoryService against the OpenAI API
// (or any OpenAI-compatible endpoint via base_url).
type OpenAIAdvisoryProvider struct {
	client      *openai.Client
	model       string
	ttsModel    string
	ttsVoice    string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	logger      logger.Logger
}

// NewOpenAIAdvisoryProvider creates a new OpenAI provider.
func NewOpenAIAdvisoryProvider(cfg config.OpenAIConfig, timeout time.Duration, log logger.Logger) (*OpenAIAdvisoryProvider, error) {
	// Resolve API key from environment variable if needed
	apiKey := resolveEnvVar(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIAdvisoryProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		ttsModel:    cfg.TTSModel,
		ttsVoice:    cfg.TTSVoice,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		logger:      log,
	}, nil
}

// Suggest generates a root-cause analysis for an underperforming indicator.
func (p *OpenAIAdvisoryProvider) Suggest(ctx context.Context, snapshot models.IndicatorSnapshot) (*SuggestionResult, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	p.logger.Info("Calling OpenAI API for suggestion", "model", p.model, "rpi_code", snapshot.Code)

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: suggestionPrompt(snapshot),
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(timeoutCtx, req)
	if err != nil {
		monitoring.RecordAdvisoryCall("suggest", time.Since(start), false)
		p.logger.Error("OpenAI API call failed", "error", err)
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		monitoring.RecordAdvisoryCall("suggest", time.Since(start), false)
		return nil, fmt.Errorf("OpenAI returned no choices")
	}

	suggestion, err := parseSuggestion(resp.Choices[0].Message.Content)
	if err != nil {
		monitoring.RecordAdvisoryCall("suggest", time.Since(start), false)
		p.logger.Error("Failed to parse suggestion payload", "error", err)
		return nil, err
	}

	monitoring.RecordAdvisoryCall("suggest", time.Since(start), true)
	p.logger.Info("OpenAI suggestion call successful",
		"tokens_used", resp.Usage.TotalTokens,
		"root_causes", len(suggestion.RootCauses))

	return &SuggestionResult{
		Suggestion:  suggestion,
		Provider:    "openai",
		Model:       p.model,
		TokensUsed:  resp.Usage.TotalTokens,
		GeneratedAt: time.Now().UTC(),
		Cached:      false,
	}, nil
}

// Narrate converts text to MP3 audio via the speech endpoint.
func (p *OpenAIAdvisoryProvider) Narrate(ctx context.Context, text string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	p.logger.Info("Calling OpenAI speech API", "model", p.ttsModel, "voice", p.ttsVoice)

	resp, err := p.client.CreateSpeech(timeoutCtx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.ttsModel),
		Input:          NarrationPrefix + text,
		Voice:          openai.SpeechVoice(p.ttsVoice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		monitoring.RecordAdvisoryCall("narrate", time.Since(start), false)
		p.logger.Error("OpenAI speech call failed", "error", err)
		return nil, fmt.Errorf("OpenAI speech error: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		monitoring.RecordAdvisoryCall("narrate", time.Since(start), false)
		return nil, fmt.Errorf("read speech payload: %w", err)
	}

	monitoring.RecordAdvisoryCall("narrate", time.Since(start), true)
	p.logger.Info("OpenAI speech call successful", "audio_bytes", len(audio))
	return audio, nil
}

// GetProviderName returns "openai".
func (p *OpenAIAdvisoryProvider) GetProviderName() string {
	return "openai"
}

// GetModelName returns the OpenAI model name.
func (p *OpenAIAdvisoryProvider) GetModelName() string {
	return p.model
}

// suggestionPrompt renders the root-cause analysis prompt for one indicator.
func suggestionPrompt(s models.IndicatorSnapshot) string {
	return fmt.Sprintf(`Act as a Senior Regulatory QA Expert. Analyze the following underperforming Regulatory Performance Indicator (RPI) for a national medicines regulatory authority.
RPI Code: %s
Description: %s
Current Value: %g%s
Target: %g%s
Baseline: %g%s
Status: %s

Suggest 3 possible root causes for this variance and 3 specific corrective actions to align with WHO GBT ML4 requirements (Continuous Improvement). Respond in structured JSON with exactly these keys: "root_causes" (array of strings), "corrective_actions" (array of strings), "ml4_justification" (string).`,
		s.Code, s.Description,
		s.CurrentValue, s.Unit,
		s.Target, s.Unit,
		s.Baseline, s.Unit,
		s.Status)
}

// parseSuggestion unmarshals the model output, tolerating markdown fences
// some models wrap around JSON payloads.
func parseSuggestion(content string) (*models.AdvisorySuggestion, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var suggestion models.AdvisorySuggestion
	if err := json.Unmarshal([]byte(trimmed), &suggestion); err != nil {
		return nil, fmt.Errorf("unmarshal suggestion: %w", err)
	}
	if len(suggestion.RootCauses) == 0 || len(suggestion.CorrectiveActions) == 0 {
		return nil, fmt.Errorf("suggestion payload incomplete")
	}
	return &suggestion, nil
}
