package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv bundles the seeded dependencies handler tests share.
type testEnv struct {
	router    *gin.Engine
	catalog   *repo.RPICatalog
	capaStore *repo.CAPAStore
	capas     *services.CAPAService
	scorecard *services.ScorecardService
	cache     cache.Valkey
}

func newTestEnv(t *testing.T, advisory services.AdvisoryService) *testEnv {
	t.Helper()
	log := logger.New("error")

	catalog := repo.NewSeededRPICatalog()
	capaStore := repo.NewSeededCAPAStore()
	capas := services.NewCAPAService(capaStore, catalog, log)
	scorecard := services.NewScorecardService(catalog, capaStore, log)
	valkey := cache.NewNoopValkeyCache(log)

	rpiHandler := NewRPIHandler(catalog, capas, valkey, log)
	capaHandler := NewCAPAHandler(capas, log)
	scorecardHandler := NewScorecardHandler(scorecard, valkey, log)
	advisoryHandler := NewAdvisoryHandler(advisory, catalog, log)
	healthHandler := NewHealthHandler(valkey, log)

	r := gin.New()
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)

	v1 := r.Group("/api/v1")
	v1.GET("/rpis", rpiHandler.ListRPIs)
	v1.GET("/rpis/:id", rpiHandler.GetRPI)
	v1.GET("/rpis/:id/trend", rpiHandler.GetTrend)
	v1.GET("/rpis/:id/capas", rpiHandler.GetCAPAs)
	v1.GET("/scorecard/status-distribution", scorecardHandler.GetStatusDistribution)
	v1.GET("/scorecard/functions", scorecardHandler.GetFunctionScores)
	v1.GET("/scorecard/critical", scorecardHandler.GetCriticalIndicators)
	v1.GET("/scorecard/summary", scorecardHandler.GetSummary)
	v1.GET("/benchmarking/evidence", scorecardHandler.GetBenchmarkingEvidence)
	v1.GET("/capas", capaHandler.ListCAPAs)
	v1.POST("/capas", capaHandler.CreateCAPA)
	v1.PUT("/capas/:id", capaHandler.UpdateCAPA)
	v1.DELETE("/capas/:id", capaHandler.DeleteCAPA)
	v1.POST("/advisory/suggest", advisoryHandler.Suggest)
	v1.POST("/advisory/narrate", advisoryHandler.Narrate)

	return &testEnv{
		router:    r,
		catalog:   catalog,
		capaStore: capaStore,
		capas:     capas,
		scorecard: scorecard,
		cache:     valkey,
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, "")
}
