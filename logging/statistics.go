package logging

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`   // IP -> Last Visit Time
	AnalysisRequests int                  `json:"analysisRequests"` // Total number of scoring requests
	ErrorCount       int                  `json:"errorCount"`       // Number of failed scoring requests
	PopularKeywords  map[string]int       `json:"popularKeywords"`  // focus keyword -> Count
	AverageLoadTime  float64              `json:"averageLoadTime"`  // Average scoring time in milliseconds
	TotalLoadTime    float64              `json:"-"`
	RequestCount     int                  `json:"-"`

	devMode bool
	now     func() time.Time
	mutex   sync.RWMutex
}

// NewStatistics creates an empty statistics collector. In dev mode the
// statistics report also lists the most scored focus keywords.
func NewStatistics(devMode bool) *Statistics {
	return &Statistics{
		UniqueVisitors:  make(map[string]time.Time),
		PopularKeywords: make(map[string]int),
		devMode:         devMode,
		now:             time.Now,
	}
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	if ip == "" {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = s.now()
}

// cleanKeyword normalizes a focus keyword for counting
func cleanKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}

// TrackKeyword records the focus keyword of a scoring request
func (s *Statistics) TrackKeyword(keyword string) {
	cleaned := cleanKeyword(keyword)
	if cleaned == "" {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.PopularKeywords[cleaned]++
}

// TrackAnalysis records a scoring request
func (s *Statistics) TrackAnalysis(loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++
	if hasError {
		s.ErrorCount++
	}

	s.TotalLoadTime += loadTime
	s.RequestCount++
	s.AverageLoadTime = s.TotalLoadTime / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.uniqueVisitors()
}

func (s *Statistics) uniqueVisitors() int {
	count := 0
	cutoff := s.now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// KeywordCount is a focus keyword and how often it was scored
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// GetPopularKeywords returns the top n focus keywords, most frequent first
func (s *Statistics) GetPopularKeywords(n int) []KeywordCount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.popularKeywords(n)
}

func (s *Statistics) popularKeywords(n int) []KeywordCount {
	result := make([]KeywordCount, 0, len(s.PopularKeywords))
	for kw, count := range s.PopularKeywords {
		result = append(result, KeywordCount{Keyword: kw, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Keyword < result[j].Keyword
	})
	if n >= 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errorRate()
}

func (s *Statistics) errorRate() float64 {
	if s.AnalysisRequests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.AnalysisRequests) * 100
}

// GetStatistics returns a report of the current statistics. Keyword
// popularity is only included in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	report := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitors(),
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         s.errorRate(),
		"averageLoadTime":   s.AverageLoadTime,
	}
	if s.devMode {
		report["popularKeywords"] = s.popularKeywords(5)
	}
	return report
}
