package models

import "time"

// IndicatorSnapshot is the slice of an RPI handed to the advisory gateway.
// It carries exactly the fields the prompt needs; the gateway never sees the
// full catalogue record.
type IndicatorSnapshot struct {
	Code         string            `json:"code"`
	Description  string            `json:"description"`
	CurrentValue float64           `json:"currentValue"`
	Target       float64           `json:"target"`
	Baseline     float64           `json:"baseline"`
	Unit         string            `json:"unit"`
	Status       PerformanceStatus `json:"status"`
}

// Snapshot extracts the advisory-relevant fields from an indicator.
func (r *RPI) Snapshot() IndicatorSnapshot {
	return IndicatorSnapshot{
		Code:         r.Code,
		Description:  r.Description,
		CurrentValue: r.CurrentValue,
		Target:       r.Target,
		Baseline:     r.Baseline,
		Unit:         r.Unit,
		Status:       r.Status,
	}
}

// AdvisorySuggestion is the structured output of a root-cause analysis call.
// The JSON keys mirror the schema the model is asked to produce, so the raw
// completion unmarshals straight into this type.
type AdvisorySuggestion struct {
	RootCauses        []string `json:"root_causes"`
	CorrectiveActions []string `json:"corrective_actions"`
	Justification     string   `json:"ml4_justification"`
}

// SuggestRequest asks for a root-cause suggestion for one indicator.
type SuggestRequest struct {
	RPIID string `json:"rpiId"`
}

// SuggestResponse is the envelope for a successful advisory call.
type SuggestResponse struct {
	Status      string              `json:"status"`
	Data        *AdvisorySuggestion `json:"data"`
	Provider    string              `json:"provider,omitempty"`
	Model       string              `json:"model,omitempty"`
	Cached      bool                `json:"cached"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// NarrateRequest asks the speech gateway to read text aloud. When Text is
// empty and RPIID is set, the server composes the indicator's standard
// read-out sentence.
type NarrateRequest struct {
	RPIID string `json:"rpiId,omitempty"`
	Text  string `json:"text,omitempty"`
}
