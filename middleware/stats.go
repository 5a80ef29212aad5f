package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/contentscore/logging"
)

// AnalyzePath is the route whose requests count as scoring requests
const AnalyzePath = "/api/analyze"

// StatsMiddleware tracks visitors and the latency and outcome of scoring requests
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.URL.Path == AnalyzePath && c.Request.Method == http.MethodPost {
			loadTime := float64(time.Since(start).Microseconds()) / 1000
			stats.TrackAnalysis(loadTime, c.Writer.Status() >= http.StatusBadRequest)
		}
	}
}
