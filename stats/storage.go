package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Score bands used to bucket overall scores.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
)

// MonthlyStats represents scoring statistics for a specific month
type MonthlyStats struct {
	Analyses     int            `json:"analyses"`
	CacheHits    int            `json:"cache_hits"`
	CacheMisses  int            `json:"cache_misses"`
	ScoreTotal   int            `json:"score_total"`
	AverageScore float64        `json:"average_score"`
	ScoreBands   map[string]int `json:"score_bands"`
	LastUpdated  time.Time      `json:"last_updated"`
}

// ScoreBand returns the band an overall score falls into
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	}
	return BandPoor
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	closeOnce   sync.Once
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string, log logrus.FieldLogger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
		log:         log,
		now:         time.Now,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

// load reads statistics from file
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to file
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write to a temporary file first so readers never see a partial file
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter handles periodic writes to disk
func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		s.log.WithError(err).Warn("could not persist scoring statistics")
	}
}

// currentMonth returns the current month key in YYYY-MM format
func (s *Storage) currentMonth() string {
	return s.now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// month returns the stats of the current month, creating them if needed.
// Callers must hold the write lock.
func (s *Storage) month() *MonthlyStats {
	key := s.currentMonth()
	stats, exists := s.stats[key]
	if !exists {
		stats = &MonthlyStats{ScoreBands: make(map[string]int)}
		s.stats[key] = stats
	}
	if stats.ScoreBands == nil {
		stats.ScoreBands = make(map[string]int)
	}
	return stats
}

// touch stamps the month and schedules a write if enough time has passed.
// Callers must hold the write lock.
func (s *Storage) touch(stats *MonthlyStats) {
	now := s.now()
	stats.LastUpdated = now
	if now.Sub(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = now
	}
}

// IncrementStats increments the cache counters of the current month
func (s *Storage) IncrementStats(cacheHits, cacheMisses int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.month()
	stats.CacheHits += cacheHits
	stats.CacheMisses += cacheMisses
	s.touch(stats)
}

// RecordScore adds an overall score to the current month
func (s *Storage) RecordScore(score int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.month()
	stats.Analyses++
	stats.ScoreTotal += score
	stats.AverageScore = float64(stats.ScoreTotal) / float64(stats.Analyses)
	stats.ScoreBands[ScoreBand(score)]++
	s.touch(stats)
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	return s.snapshot(s.currentMonth())
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	_, exists := s.stats[yearMonth]
	s.mutex.RUnlock()
	if !exists {
		return MonthlyStats{}, false
	}
	return s.snapshot(yearMonth), true
}

// snapshot copies a month so callers cannot race with writers
func (s *Storage) snapshot(yearMonth string) MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats, exists := s.stats[yearMonth]
	if !exists {
		return MonthlyStats{ScoreBands: map[string]int{}}
	}
	out := *stats
	out.ScoreBands = make(map[string]int, len(stats.ScoreBands))
	for k, v := range stats.ScoreBands {
		out.ScoreBands[k] = v
	}
	return out
}

// Cleanup removes statistics older than retainMonths months, counting the
// current month as the first.
func (s *Storage) Cleanup(retainMonths int) {
	if retainMonths < 1 {
		retainMonths = 1
	}
	now := s.now()
	// step back from the 1st; AddDate from the 31st can skip a month
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keep := make(map[string]bool, retainMonths)
	for i := 0; i < retainMonths; i++ {
		keep[first.AddDate(0, -i, 0).Format("2006-01")] = true
	}

	s.mutex.Lock()
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	s.log.WithField("months", retainMonths).Debug("pruned scoring statistics")
}

// GetAllMonths returns a sorted list of all months that have statistics
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	// Newest first
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Flush writes the statistics to disk immediately
func (s *Storage) Flush() error {
	return s.save()
}

// Shutdown stops the background writer and persists the final state
func (s *Storage) Shutdown() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
	return s.save()
}
