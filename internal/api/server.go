package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/regsight/regsight-core/internal/api/handlers"
	"github.com/regsight/regsight-core/internal/api/middleware"
	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/monitoring"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

type Server struct {
	config     *config.Config
	logger     logger.Logger
	cache      cache.Valkey
	catalog    *repo.RPICatalog
	capas      *services.CAPAService
	scorecard  *services.ScorecardService
	advisory   services.AdvisoryService // nil when disabled
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	log logger.Logger,
	valkeyCache cache.Valkey,
	catalog *repo.RPICatalog,
	capas *services.CAPAService,
	scorecard *services.ScorecardService,
	advisory services.AdvisoryService,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:    cfg,
		logger:    log,
		cache:     valkeyCache,
		catalog:   catalog,
		capas:     capas,
		scorecard: scorecard,
		advisory:  advisory,
		router:    router,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	// CORS for the dashboard UI
	s.router.Use(middleware.CORSMiddleware(s.config.CORS))

	// Request logging
	s.router.Use(middleware.RequestLogger(s.logger))

	// Prometheus request metrics
	s.router.Use(middleware.MetricsMiddleware())

	// Rate limiting using the Valkey cache
	s.router.Use(middleware.RateLimiter(s.cache))

	// OpenAPI specification endpoint
	s.router.StaticFile("/api/openapi.yaml", "api/openapi.yaml")

	// Swagger UI via gin-swagger, served from the external openapi.yaml.
	// Visit /swagger/index.html
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/api/openapi.yaml")))

	// Prometheus metrics endpoint
	if s.config.Monitoring.PrometheusEnabled {
		monitoring.SetupPrometheusMetrics(s.router)
	}
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.cache, s.logger)
	rpiHandler := handlers.NewRPIHandler(s.catalog, s.capas, s.cache, s.logger)
	capaHandler := handlers.NewCAPAHandler(s.capas, s.logger)
	scorecardHandler := handlers.NewScorecardHandler(s.scorecard, s.cache, s.logger)
	advisoryHandler := handlers.NewAdvisoryHandler(s.advisory, s.catalog, s.logger)

	// Public health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)

	// Root redirect to Swagger UI for convenience
	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/swagger/index.html")
	})

	v1 := s.router.Group("/api/v1")

	// Indicator catalogue
	v1.GET("/rpis", rpiHandler.ListRPIs)
	v1.GET("/rpis/:id", rpiHandler.GetRPI)
	v1.GET("/rpis/:id/trend", rpiHandler.GetTrend)
	v1.GET("/rpis/:id/capas", rpiHandler.GetCAPAs)

	// Scorecard aggregates
	v1.GET("/scorecard/status-distribution", scorecardHandler.GetStatusDistribution)
	v1.GET("/scorecard/functions", scorecardHandler.GetFunctionScores)
	v1.GET("/scorecard/critical", scorecardHandler.GetCriticalIndicators)
	v1.GET("/scorecard/summary", scorecardHandler.GetSummary)
	v1.GET("/benchmarking/evidence", scorecardHandler.GetBenchmarkingEvidence)

	// CAPA register
	v1.GET("/capas", capaHandler.ListCAPAs)
	v1.POST("/capas", capaHandler.CreateCAPA)
	v1.PUT("/capas/:id", capaHandler.UpdateCAPA)
	v1.DELETE("/capas/:id", capaHandler.DeleteCAPA)

	// AI advisory gateway
	v1.POST("/advisory/suggest", advisoryHandler.Suggest)
	v1.POST("/advisory/narrate", advisoryHandler.Narrate)

	// Live scorecard stream
	if s.config.WebSocket.Enabled {
		wsHandler := handlers.NewWebSocketHandler(s.scorecard, s.config.WebSocket, s.logger)
		v1.GET("/ws/scorecard", wsHandler.HandleScorecardStream)
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("REGSIGHT-CORE REST API server starting", "port", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down REGSIGHT-CORE gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler returns the underlying Gin engine so tests (or embedders) can mount it.
func (s *Server) Handler() http.Handler {
	return s.router
}
