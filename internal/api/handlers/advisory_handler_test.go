package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/services"
)

type stubAdvisory struct {
	fail         bool
	lastNarrated string
}

func (s *stubAdvisory) Suggest(ctx context.Context, snapshot models.IndicatorSnapshot) (*services.SuggestionResult, error) {
	if s.fail {
		return nil, errors.New("provider down")
	}
	return &services.SuggestionResult{
		Suggestion: &models.AdvisorySuggestion{
			RootCauses:        []string{"inspector shortage", "scheduling gaps", "funding delays"},
			CorrectiveActions: []string{"recruit inspectors", "risk-rank schedule", "ring-fence budget"},
			Justification:     "Demonstrates continuous improvement per GBT ML4.",
		},
		Provider:    "stub",
		Model:       "stub-1",
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *stubAdvisory) Narrate(ctx context.Context, text string) ([]byte, error) {
	if s.fail {
		return nil, errors.New("provider down")
	}
	s.lastNarrated = text
	return []byte("audio-bytes"), nil
}

func (s *stubAdvisory) GetProviderName() string { return "stub" }
func (s *stubAdvisory) GetModelName() string    { return "stub-1" }

func TestSuggest(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{})

	w := env.do(http.MethodPost, "/api/v1/advisory/suggest", `{"rpiId":"5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SuggestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Data)
	assert.Len(t, resp.Data.RootCauses, 3)
	assert.Len(t, resp.Data.CorrectiveActions, 3)
	assert.Equal(t, "stub", resp.Provider)
	assert.False(t, resp.Cached)
}

func TestSuggest_UnknownIndicator(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{})

	w := env.do(http.MethodPost, "/api/v1/advisory/suggest", `{"rpiId":"999"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "indicator_not_found")
}

func TestSuggest_MissingID(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{})

	w := env.do(http.MethodPost, "/api/v1/advisory/suggest", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggest_ProviderFailure(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{fail: true})

	w := env.do(http.MethodPost, "/api/v1/advisory/suggest", `{"rpiId":"5"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Status    string `json:"status"`
		Error     string `json:"error"`
		Retryable bool   `json:"retryable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "suggestion_unavailable", resp.Error)
	assert.True(t, resp.Retryable)
}

func TestSuggest_FeatureDisabled(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/advisory/suggest", `{"rpiId":"5"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "suggestion_unavailable")
}

func TestNarrate_FreeText(t *testing.T) {
	stub := &stubAdvisory{}
	env := newTestEnv(t, stub)

	w := env.do(http.MethodPost, "/api/v1/advisory/narrate", `{"text":"RI-RPI-03 is in red alert"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "audio-bytes", w.Body.String())
	assert.Equal(t, "RI-RPI-03 is in red alert", stub.lastNarrated)
}

func TestNarrate_ComposedFromIndicator(t *testing.T) {
	stub := &stubAdvisory{}
	env := newTestEnv(t, stub)

	w := env.do(http.MethodPost, "/api/v1/advisory/narrate", `{"rpiId":"5"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, stub.lastNarrated, "RI-RPI-03")
	assert.Contains(t, stub.lastNarrated, "Red Alert")
}

func TestNarrate_MissingInput(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{})

	w := env.do(http.MethodPost, "/api/v1/advisory/narrate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNarrate_ProviderFailure(t *testing.T) {
	env := newTestEnv(t, &stubAdvisory{fail: true})

	w := env.do(http.MethodPost, "/api/v1/advisory/narrate", `{"text":"anything at all"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "narration_unavailable")
}
