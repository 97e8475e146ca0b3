package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status          string `json:"status"`
	Backend         string `json:"backend"`
	AnalyzerHealthy bool   `json:"analyzer_healthy"`
}

// Health handles GET /health. It reports the last probe of the analyzer but
// stays 200 so the UI itself is considered up.
func (s *Server) Health(c *gin.Context) {
	healthy := true
	if s.analyzerHealthy != nil {
		healthy = s.analyzerHealthy.Load()
	}
	c.JSON(http.StatusOK, HealthStatus{
		Status:          "ok",
		Backend:         s.backend,
		AnalyzerHealthy: healthy,
	})
}
