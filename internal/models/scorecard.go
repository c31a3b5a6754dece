package models

import "time"

// Score bands for per-function achievement: the three-way severity contract
// consumers band colours on. Above 85 is good, above 60 is caution,
// everything else is critical.
const (
	BandGood     = "good"
	BandCaution  = "caution"
	BandCritical = "critical"
)

// FunctionScore is the average achievement of one regulatory function's
// indicators, clamped to [0, 100] and rounded.
type FunctionScore struct {
	Function   RegulatoryFunction `json:"function"`
	Score      int                `json:"score"`
	Band       string             `json:"band"`
	Indicators int                `json:"indicators"`
}

// StatusDistributionResponse reports how many indicators sit in each status.
// Counts always sum to the catalogue size.
type StatusDistributionResponse struct {
	Counts map[PerformanceStatus]int `json:"counts"`
	Total  int                       `json:"total"`
}

// FunctionScoresResponse is the envelope for the per-function scorecard.
type FunctionScoresResponse struct {
	Scores []FunctionScore `json:"scores"`
}

// ScorecardSummary carries the dashboard headline figures.
type ScorecardSummary struct {
	TotalIndicators int       `json:"totalIndicators"`
	AverageScore    int       `json:"averageScore"`
	RedAlerts       int       `json:"redAlerts"`
	CriticalCount   int       `json:"criticalCount"`
	OpenCAPAs       int       `json:"openCapas"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// FunctionEvidence aggregates benchmarking metadata for one regulatory
// function: which WHO GBT sub-indicators its RPIs evidence and whether any
// of them count towards WLA recognition.
type FunctionEvidence struct {
	Function    RegulatoryFunction `json:"function"`
	GBTLinkages []string           `json:"gbtLinkages"`
	WLARelevant bool               `json:"wlaRelevant"`
	Indicators  int                `json:"indicators"`
}

// BenchmarkingEvidenceResponse is the audit-readiness readout derived from
// the catalogue.
type BenchmarkingEvidenceResponse struct {
	Functions     []FunctionEvidence `json:"functions"`
	WLAFunctions  int                `json:"wlaFunctions"`
	EvidenceUnits int                `json:"evidenceUnits"`
}
