package api

import (
	"net/http"
	"time"

	"edustat/adapters/excel"
	"edustat/app"
	"edustat/internal"
	"edustat/ports"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps multipart dataset uploads
const maxUploadSize = 50 << 20

// Server exposes the statistical tests over HTTP
type Server struct {
	router    *gin.Engine
	service   *app.AnalysisService
	reader    *excel.DataReader
	renderer  ports.ReportRenderer
	outputDir string
	logger    *internal.Logger
}

// NewServer creates the HTTP server and registers its routes
func NewServer(service *app.AnalysisService, reader *excel.DataReader, renderer ports.ReportRenderer, outputDir string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	s := &Server{
		router:    gin.New(),
		service:   service,
		reader:    reader,
		renderer:  renderer,
		outputDir: outputDir,
		logger:    logger,
	}
	s.router.MaxMultipartMemory = maxUploadSize
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		tests := v1.Group("/tests")
		tests.POST("/indt", s.handleIndependentTTest)
		tests.POST("/mannwhitneyu", s.handleMannWhitneyU)
		tests.POST("/correlation", s.handleCorrelation)
		tests.POST("/normality", s.handleNormality)

		v1.POST("/reports/indt", s.handleIndependentTTestReport)
	}
}

// Handler returns the router for use with net/http or httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting edustat API on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("[API] %s %s -> %d in %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
