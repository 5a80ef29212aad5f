package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("debug", "JSON", &buf)
		require.NoError(t, err)

		log.WithField("overall", 91).Debug("scored")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "scored", entry["msg"])
		assert.Equal(t, float64(91), entry["overall"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("warn", "text", &buf)
		require.NoError(t, err)

		log.Info("hidden")
		assert.Empty(t, buf.String())
		assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := New("loud", "text", nil)
		assert.Error(t, err)

		_, err = New("info", "xml", nil)
		assert.Error(t, err)
	})
}

func TestStatistics(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	s := NewStatistics(false)
	s.now = func() time.Time { return now }

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("")
	s.UniqueVisitors["10.0.0.3"] = now.Add(-48 * time.Hour)

	s.TrackAnalysis(10, false)
	s.TrackAnalysis(30, true)

	assert.Equal(t, 2, s.GetUniqueVisitorsCount())
	assert.InDelta(t, 50.0, s.GetErrorRate(), 1e-9)

	report := s.GetStatistics()
	assert.Equal(t, 2, report["totalRequests"])
	assert.Equal(t, 20.0, report["averageLoadTime"])
	assert.NotContains(t, report, "popularKeywords")
}

func TestPopularKeywords(t *testing.T) {
	s := NewStatistics(true)
	for _, kw := range []string{"Travel Cards", "travel  cards", "miles", "points", "miles", "travel cards", "  "} {
		s.TrackKeyword(kw)
	}

	assert.Equal(t, []KeywordCount{
		{Keyword: "travel cards", Count: 3},
		{Keyword: "miles", Count: 2},
	}, s.GetPopularKeywords(2))

	report := s.GetStatistics()
	assert.Len(t, report["popularKeywords"], 3)
}

func TestErrorRateWithoutRequests(t *testing.T) {
	assert.Zero(t, NewStatistics(false).GetErrorRate())
}
