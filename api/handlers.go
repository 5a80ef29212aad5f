package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/contentscore/analyzer"
)

type contentRequest struct {
	Content string `json:"content"`
}

type keywordRequest struct {
	Content string   `json:"content"`
	Keyword string   `json:"keyword"`
	Corpus  []string `json:"corpus,omitempty"`
}

type structureRequest struct {
	HTML string `json:"html"`
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// limitBody caps the request body size for scoring routes
func (s *Server) limitBody(c *gin.Context) {
	if s.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	}
	c.Next()
}

// bind decodes the JSON body into obj, answering 400 or 413 on failure
func (s *Server) bind(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Request body too large",
		})
		return false
	}

	s.log.WithError(err).WithField("path", c.Request.URL.Path).Debug("rejected request body")
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid request body: " + err.Error(),
	})
	return false
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzer.Request
	if !s.bind(c, &req) {
		return
	}

	result := s.analyzer.Analyze(req)
	s.requestStats.TrackKeyword(req.Metadata.FocusKeyword)

	c.JSON(http.StatusOK, result)
}

func (s *Server) metrics(c *gin.Context) {
	var req contentRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, analyzer.ExtractMetrics(req.Content))
}

func (s *Server) readability(c *gin.Context) {
	var req contentRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, analyzer.CalculateReadability(req.Content))
}

func (s *Server) keyword(c *gin.Context) {
	var req keywordRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, analyzer.AnalyzeKeyword(req.Content, req.Keyword, req.Corpus))
}

func (s *Server) structure(c *gin.Context) {
	var req structureRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, analyzer.AnalyzeStructure(req.HTML))
}

func (s *Server) statistics(c *gin.Context) {
	response := gin.H{
		"requests": s.requestStats.GetStatistics(),
		"cache":    s.analyzer.GetCacheStats(),
	}
	if s.scoreStats != nil {
		response["scoring"] = s.scoreStats.GetCurrentStats()
		response["months"] = s.scoreStats.GetAllMonths()
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) monthlyStatistics(c *gin.Context) {
	month := c.Param("month")
	if !monthRe.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Month must be formatted as YYYY-MM",
		})
		return
	}
	if s.scoreStats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No statistics for " + month})
		return
	}
	monthly, ok := s.scoreStats.GetMonthlyStats(month)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No statistics for " + month})
		return
	}
	c.JSON(http.StatusOK, monthly)
}
