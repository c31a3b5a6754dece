package services

import (
	"math"
	"time"

	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/pkg/logger"
)

// ScorecardService derives the dashboard aggregates from the indicator
// catalogue and the CAPA register. Everything here is pure arithmetic over
// in-memory snapshots; no method can fail.
type ScorecardService struct {
	catalog *repo.RPICatalog
	capas   *repo.CAPAStore
	logger  logger.Logger
}

func NewScorecardService(catalog *repo.RPICatalog, capas *repo.CAPAStore, log logger.Logger) *ScorecardService {
	return &ScorecardService{
		catalog: catalog,
		capas:   capas,
		logger:  log,
	}
}

// StatusDistribution counts indicators per performance status. Every status
// appears in the map, so counts sum to the catalogue size.
func (s *ScorecardService) StatusDistribution() models.StatusDistributionResponse {
	start := time.Now()
	counts := map[models.PerformanceStatus]int{
		models.StatusAchieved: 0,
		models.StatusOnTrack:  0,
		models.StatusBehind:   0,
		models.StatusRedAlert: 0,
	}
	rpis := s.catalog.All()
	for _, r := range rpis {
		counts[r.Status]++
	}
	metrics.ScorecardComputeDuration.WithLabelValues("status_distribution").Observe(time.Since(start).Seconds())
	return models.StatusDistributionResponse{Counts: counts, Total: len(rpis)}
}

// FunctionScores computes the average target achievement per regulatory
// function, in canonical function order. Functions without indicators score
// zero. Raw percentages are averaged first and only the resulting score is
// clamped to [0, 100], so one indicator overshooting its target offsets a
// sibling that lags behind.
func (s *ScorecardService) FunctionScores() models.FunctionScoresResponse {
	start := time.Now()
	byFunction := make(map[models.RegulatoryFunction][]float64)
	for _, r := range s.catalog.All() {
		byFunction[r.Function] = append(byFunction[r.Function], achievement(r))
	}

	scores := make([]models.FunctionScore, 0, len(models.AllRegulatoryFunctions()))
	for _, fn := range models.AllRegulatoryFunctions() {
		pcts := byFunction[fn]
		score := 0
		if len(pcts) > 0 {
			sum := 0.0
			for _, p := range pcts {
				sum += p
			}
			score = clampScore(sum / float64(len(pcts)))
		}
		scores = append(scores, models.FunctionScore{
			Function:   fn,
			Score:      score,
			Band:       scoreBand(score),
			Indicators: len(pcts),
		})
	}
	metrics.ScorecardComputeDuration.WithLabelValues("function_scores").Observe(time.Since(start).Seconds())
	return models.FunctionScoresResponse{Scores: scores}
}

// CriticalIndicators returns indicators whose status demands intervention,
// preserving catalogue order.
func (s *ScorecardService) CriticalIndicators() []*models.RPI {
	out := s.catalog.List(models.RPIListRequest{Critical: true})
	metrics.CriticalIndicators.Set(float64(len(out)))
	return out
}

// Summary assembles the dashboard headline figures.
func (s *ScorecardService) Summary() models.ScorecardSummary {
	start := time.Now()
	rpis := s.catalog.All()

	redAlerts := 0
	critical := 0
	for _, r := range rpis {
		if r.Status == models.StatusRedAlert {
			redAlerts++
		}
		if r.Status.Critical() {
			critical++
		}
	}

	avg := 0
	if len(rpis) > 0 {
		sum := 0.0
		for _, r := range rpis {
			sum += achievement(r)
		}
		avg = clampScore(sum / float64(len(rpis)))
	}

	openCAPAs := s.capas.CountByStatus()[models.CAPAOpen]
	metrics.OpenCAPAs.Set(float64(openCAPAs))
	metrics.ScorecardComputeDuration.WithLabelValues("summary").Observe(time.Since(start).Seconds())

	return models.ScorecardSummary{
		TotalIndicators: len(rpis),
		AverageScore:    avg,
		RedAlerts:       redAlerts,
		CriticalCount:   critical,
		OpenCAPAs:       openCAPAs,
		GeneratedAt:     time.Now().UTC(),
	}
}

// BenchmarkingEvidence collates WHO GBT linkages and WLA relevance per
// function for audit preparation. Only functions with indicators appear.
func (s *ScorecardService) BenchmarkingEvidence() models.BenchmarkingEvidenceResponse {
	type bucket struct {
		linkages []string
		wla      bool
		count    int
	}
	buckets := make(map[models.RegulatoryFunction]*bucket)
	evidenceUnits := 0
	for _, r := range s.catalog.All() {
		b := buckets[r.Function]
		if b == nil {
			b = &bucket{}
			buckets[r.Function] = b
		}
		if r.WHOGBTLinkage != "" {
			b.linkages = append(b.linkages, r.WHOGBTLinkage)
			evidenceUnits++
		}
		if r.WLARelevance {
			b.wla = true
		}
		b.count++
	}

	functions := make([]models.FunctionEvidence, 0, len(buckets))
	wlaFunctions := 0
	for _, fn := range models.AllRegulatoryFunctions() {
		b := buckets[fn]
		if b == nil {
			continue
		}
		if b.wla {
			wlaFunctions++
		}
		functions = append(functions, models.FunctionEvidence{
			Function:    fn,
			GBTLinkages: b.linkages,
			WLARelevant: b.wla,
			Indicators:  b.count,
		})
	}

	return models.BenchmarkingEvidenceResponse{
		Functions:     functions,
		WLAFunctions:  wlaFunctions,
		EvidenceUnits: evidenceUnits,
	}
}

// achievement is the raw per-indicator target achievement percentage. It may
// exceed 100 for an indicator beating its target; clamping happens only after
// averaging. A zero target counts as fully achieved.
func achievement(r *models.RPI) float64 {
	if r.Target == 0 {
		return 100
	}
	return (r.CurrentValue / r.Target) * 100
}

// clampScore rounds an averaged percentage and clamps it to [0, 100].
func clampScore(avg float64) int {
	score := int(math.Round(avg))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func scoreBand(score int) string {
	switch {
	case score > 85:
		return models.BandGood
	case score > 60:
		return models.BandCaution
	default:
		return models.BandCritical
	}
}
