package server

import (
	"embed"
	"html/template"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/commentsense/internal/sentiment"
)

const DEFAULT_MAX_UPLOAD_BYTES = 5 << 20

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	reconciler      *sentiment.Reconciler
	backend         string
	analyzerHealthy *atomic.Bool
	maxUploadBytes  int64
}

type Option func(*Server)

// WithAnalyzerHealth exposes the monitored analyzer state on /health.
func WithAnalyzerHealth(healthy *atomic.Bool) Option {
	return func(s *Server) { s.analyzerHealthy = healthy }
}

func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

func New(reconciler *sentiment.Reconciler, backend string, opts ...Option) *Server {
	s := &Server{
		reconciler:     reconciler,
		backend:        backend,
		maxUploadBytes: DEFAULT_MAX_UPLOAD_BYTES,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(Logger())
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = s.maxUploadBytes

	router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))

	router.GET("/health", s.Health)

	router.GET("/", s.Index)
	router.POST("/analyze/single", s.AnalyzeSinglePage)
	router.POST("/analyze/file", s.AnalyzeFilePage)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sentiment", s.AnalyzeJSON)
		v1.POST("/sentiment/file", s.AnalyzeFileJSON)
	}

	return router
}
