package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/pkg/logger"
)

func newSeededScorecard(t *testing.T) *ScorecardService {
	t.Helper()
	return NewScorecardService(repo.NewSeededRPICatalog(), repo.NewSeededCAPAStore(), logger.New("error"))
}

func TestScorecardService_StatusDistribution(t *testing.T) {
	s := newSeededScorecard(t)

	dist := s.StatusDistribution()
	assert.Equal(t, 5, dist.Total)
	assert.Equal(t, 2, dist.Counts[models.StatusAchieved])
	assert.Equal(t, 1, dist.Counts[models.StatusOnTrack])
	assert.Equal(t, 1, dist.Counts[models.StatusBehind])
	assert.Equal(t, 1, dist.Counts[models.StatusRedAlert])

	sum := 0
	for _, n := range dist.Counts {
		sum += n
	}
	assert.Equal(t, dist.Total, sum)
}

func TestScorecardService_FunctionScores(t *testing.T) {
	s := newSeededScorecard(t)

	resp := s.FunctionScores()
	require.Len(t, resp.Scores, 8)

	byFn := make(map[models.RegulatoryFunction]models.FunctionScore)
	for _, fs := range resp.Scores {
		byFn[fs.Function] = fs
	}

	// 82/95 averages to 86 for market authorization.
	ma := byFn[models.FunctionMarketAuthorization]
	assert.Equal(t, 86, ma.Score)
	assert.Equal(t, models.BandGood, ma.Band)
	assert.Equal(t, 1, ma.Indicators)

	pv := byFn[models.FunctionPharmacovigilance]
	assert.Equal(t, 92, pv.Score)
	assert.Equal(t, models.BandGood, pv.Band)

	// Lower-is-better indicator beats its target (22 days vs 20); the
	// averaged 110% clamps down to 100.
	lt := byFn[models.FunctionLaboratoryTesting]
	assert.Equal(t, 100, lt.Score)

	ri := byFn[models.FunctionRegulatoryInspection]
	assert.Equal(t, 61, ri.Score)
	assert.Equal(t, models.BandCaution, ri.Band)

	// Functions without indicators score zero and band critical.
	empty := byFn[models.FunctionLotRelease]
	assert.Equal(t, 0, empty.Score)
	assert.Equal(t, models.BandCritical, empty.Band)
	assert.Equal(t, 0, empty.Indicators)
}

func TestScorecardService_FunctionScores_AveragesBeforeClamping(t *testing.T) {
	// One indicator far over target, one far under: the raw percentages
	// (150 and 40) average to 95, so the overshoot lifts the function into
	// the good band. Clamping each indicator first would report 70.
	catalog := repo.NewRPICatalog([]*models.RPI{
		{
			ID:       "a",
			Code:     "MA-RPI-90",
			Function: models.FunctionMarketAuthorization,
			Target:   100, CurrentValue: 150,
			Status: models.StatusAchieved,
		},
		{
			ID:       "b",
			Code:     "MA-RPI-91",
			Function: models.FunctionMarketAuthorization,
			Target:   100, CurrentValue: 40,
			Status: models.StatusBehind,
		},
	}, nil)
	s := NewScorecardService(catalog, repo.NewCAPAStore(), logger.New("error"))

	byFn := make(map[models.RegulatoryFunction]models.FunctionScore)
	for _, fs := range s.FunctionScores().Scores {
		byFn[fs.Function] = fs
	}
	ma := byFn[models.FunctionMarketAuthorization]
	assert.Equal(t, 95, ma.Score)
	assert.Equal(t, models.BandGood, ma.Band)

	// The clamp still binds when the average itself exceeds 100.
	sum := s.Summary()
	assert.Equal(t, 95, sum.AverageScore)
}

func TestScorecardService_FunctionScores_ClampsAveragedOvershoot(t *testing.T) {
	catalog := repo.NewRPICatalog([]*models.RPI{
		{
			ID:       "a",
			Code:     "LT-RPI-90",
			Function: models.FunctionLaboratoryTesting,
			Target:   10, CurrentValue: 30,
			Status: models.StatusAchieved,
		},
	}, nil)
	s := NewScorecardService(catalog, repo.NewCAPAStore(), logger.New("error"))

	for _, fs := range s.FunctionScores().Scores {
		if fs.Function == models.FunctionLaboratoryTesting {
			assert.Equal(t, 100, fs.Score)
		}
	}
	assert.Equal(t, 100, s.Summary().AverageScore)
}

func TestScorecardService_FunctionScores_CanonicalOrder(t *testing.T) {
	s := newSeededScorecard(t)

	resp := s.FunctionScores()
	want := models.AllRegulatoryFunctions()
	require.Len(t, resp.Scores, len(want))
	for i, fs := range resp.Scores {
		assert.Equal(t, want[i], fs.Function)
	}
}

func TestScorecardService_CriticalIndicators(t *testing.T) {
	s := newSeededScorecard(t)

	critical := s.CriticalIndicators()
	require.Len(t, critical, 2)
	assert.Equal(t, "MA-RPI-01", critical[0].Code)
	assert.Equal(t, "RI-RPI-03", critical[1].Code)
	for _, r := range critical {
		assert.True(t, r.Status.Critical())
	}
}

func TestScorecardService_Summary(t *testing.T) {
	s := newSeededScorecard(t)

	// Raw percentages 86.3, 92, 110, 100, 61.1 average to 89.9 -> 90.
	sum := s.Summary()
	assert.Equal(t, 5, sum.TotalIndicators)
	assert.Equal(t, 90, sum.AverageScore)
	assert.Equal(t, 1, sum.RedAlerts)
	assert.Equal(t, 2, sum.CriticalCount)
	assert.Equal(t, 1, sum.OpenCAPAs)
	assert.False(t, sum.GeneratedAt.IsZero())
}

func TestScorecardService_Summary_EmptyCatalogue(t *testing.T) {
	s := NewScorecardService(repo.NewRPICatalog(nil, nil), repo.NewCAPAStore(), logger.New("error"))

	sum := s.Summary()
	assert.Equal(t, 0, sum.TotalIndicators)
	assert.Equal(t, 0, sum.AverageScore)

	dist := s.StatusDistribution()
	assert.Equal(t, 0, dist.Total)
}

func TestScorecardService_BenchmarkingEvidence(t *testing.T) {
	s := newSeededScorecard(t)

	ev := s.BenchmarkingEvidence()
	require.Len(t, ev.Functions, 5)
	assert.Equal(t, 5, ev.WLAFunctions)
	assert.Equal(t, 5, ev.EvidenceUnits)

	// Canonical function order, absent functions skipped.
	assert.Equal(t, models.FunctionNationalRegulatorySystem, ev.Functions[0].Function)
	assert.Equal(t, models.FunctionMarketAuthorization, ev.Functions[1].Function)

	ma := ev.Functions[1]
	assert.Equal(t, []string{"MA01.01 (ML4)"}, ma.GBTLinkages)
	assert.True(t, ma.WLARelevant)
	assert.Equal(t, 1, ma.Indicators)
}

func TestAchievement_ZeroTarget(t *testing.T) {
	r := &models.RPI{CurrentValue: 3, Target: 0}
	assert.Equal(t, 100.0, achievement(r))
}

func TestAchievement_RawOvershoot(t *testing.T) {
	r := &models.RPI{CurrentValue: 30, Target: 20}
	assert.Equal(t, 150.0, achievement(r))
}
