package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/logging"
	"github.com/seo-optimizer/contentscore/middleware"
	"github.com/seo-optimizer/contentscore/stats"
)

// Options wires the API to its services
type Options struct {
	Analyzer       *analyzer.Analyzer
	RequestStats   *logging.Statistics
	ScoreStats     *stats.Storage
	RateLimiter    *middleware.RateLimiter
	Logger         logrus.FieldLogger
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// Server holds the handlers' dependencies
type Server struct {
	analyzer     *analyzer.Analyzer
	requestStats *logging.Statistics
	scoreStats   *stats.Storage
	log          logrus.FieldLogger
	maxBodyBytes int64
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.RequestStats == nil {
		opts.RequestStats = logging.NewStatistics(false)
	}
	if opts.Analyzer == nil {
		opts.Analyzer = analyzer.New(analyzer.Options{Stats: opts.ScoreStats, Logger: opts.Logger})
	}
	s := &Server{
		analyzer:     opts.Analyzer,
		requestStats: opts.RequestStats,
		scoreStats:   opts.ScoreStats,
		log:          opts.Logger,
		maxBodyBytes: opts.MaxBodyBytes,
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.ErrorHandler(opts.Logger))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.RateLimit())
	}
	r.Use(middleware.StatsMiddleware(opts.RequestStats))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/statistics", s.statistics)
		api.GET("/statistics/:month", s.monthlyStatistics)

		scoring := api.Group("", s.limitBody)
		scoring.POST("/analyze", s.analyze)
		scoring.POST("/metrics", s.metrics)
		scoring.POST("/readability", s.readability)
		scoring.POST("/keyword", s.keyword)
		scoring.POST("/structure", s.structure)
	}

	return r
}

// NewHandler wraps the router with CORS handling for the CMS origins
func NewHandler(opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         600,
	})
	return c.Handler(NewRouter(opts))
}

// NewServer returns an HTTP server for addr serving the API
func NewServer(addr string, opts Options) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
