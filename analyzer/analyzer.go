package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/seo-optimizer/contentscore/stats"
)

// Request is a single scoring request as received from the CMS
type Request struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
	Corpus   []string `json:"corpus,omitempty"`
}

// Options configures an Analyzer
type Options struct {
	CacheTTL        time.Duration
	CleanupInterval time.Duration
	Stats           *stats.Storage
	Logger          logrus.FieldLogger
}

// CacheStats provides statistics about the analyzer's cache
type CacheStats struct {
	Entries     int           `json:"entries"`
	CacheHits   int           `json:"cacheHits"`
	CacheMisses int           `json:"cacheMisses"`
	CacheTTL    time.Duration `json:"cacheTTL"`
}

// Analyzer serves scoring requests. Results are cached by request content;
// the scores themselves always come from AnalyzeContent.
type Analyzer struct {
	cache    *gocache.Cache
	cacheTTL atomic.Int64
	stats    *stats.Storage
	log      logrus.FieldLogger
}

// New creates a new Analyzer instance
func New(opts Options) *Analyzer {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Minute
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 5 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	a := &Analyzer{
		cache: gocache.New(opts.CacheTTL, opts.CleanupInterval),
		stats: opts.Stats,
		log:   opts.Logger,
	}
	a.cacheTTL.Store(int64(opts.CacheTTL))
	return a
}

// generateCacheKey creates a unique key for a request
func generateCacheKey(req Request) string {
	h := md5.New()
	write := func(s string) {
		fmt.Fprintf(h, "%d:%s|", len(s), s)
	}
	write(req.Content)
	write(req.Metadata.Title)
	write(req.Metadata.MetaDescription)
	write(req.Metadata.Slug)
	write(req.Metadata.FocusKeyword)
	write(strings.Join(req.Metadata.SecondaryKeywords, "\x00"))
	write(req.Metadata.HeroImageURL)
	write(req.Metadata.HeroImageAlt)
	fmt.Fprintf(h, "corpus:%d|", len(req.Corpus))
	for _, doc := range req.Corpus {
		write(doc)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IsCached checks if a request has a live cached result
func (a *Analyzer) IsCached(req Request) bool {
	_, found := a.cache.Get(generateCacheKey(req))
	return found
}

// Analyze scores a request, serving repeated requests from the cache. The
// returned result is a copy the caller owns.
func (a *Analyzer) Analyze(req Request) *Result {
	key := generateCacheKey(req)
	if cached, found := a.cache.Get(key); found {
		a.recordCache(1, 0)
		a.log.WithField("key", key).Debug("analysis served from cache")
		return cached.(*Result).Clone()
	}
	a.recordCache(0, 1)

	start := time.Now()
	result := AnalyzeContent(req.Content, req.Metadata, req.Corpus)
	a.cache.Set(key, result, time.Duration(a.cacheTTL.Load()))

	if a.stats != nil {
		a.stats.RecordScore(result.Scores.Overall)
	}
	a.log.WithFields(logrus.Fields{
		"key":             key,
		"overall":         result.Scores.Overall,
		"recommendations": len(result.Recommendations),
		"words":           result.Metrics.Text.WordCount,
		"elapsed":         time.Since(start),
	}).Debug("analysis completed")

	return result.Clone()
}

func (a *Analyzer) recordCache(hits, misses int) {
	if a.stats != nil {
		a.stats.IncrementStats(hits, misses)
	}
}

// SetCacheTTL changes the expiration of results cached from now on.
// Entries already in the cache keep their expiry.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		a.cacheTTL.Store(int64(ttl))
	}
}

// ClearCache clears the analysis cache
func (a *Analyzer) ClearCache() {
	a.cache.Flush()
}

// GetCacheStats returns statistics about the cache
func (a *Analyzer) GetCacheStats() CacheStats {
	cs := CacheStats{
		Entries:  a.cache.ItemCount(),
		CacheTTL: time.Duration(a.cacheTTL.Load()),
	}
	if a.stats != nil {
		current := a.stats.GetCurrentStats()
		cs.CacheHits = current.CacheHits
		cs.CacheMisses = current.CacheMisses
	}
	return cs
}

// GetStats returns the statistics storage instance
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown flushes statistics and drops cached results
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}
	a.cache.Flush()
	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}
	return nil
}
