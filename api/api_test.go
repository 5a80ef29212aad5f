package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/logging"
	"github.com/seo-optimizer/contentscore/stats"
)

const article = `<article><h1>Travel Cards Explained</h1>
<p>Travel cards earn points on every purchase. Pick travel cards with no foreign fees.</p>
<h2>How to choose</h2><ul><li>Compare bonuses.</li></ul>
<p>Read our <a href="/guides/points">points guide</a>.</p></article>`

type testEnv struct {
	handler    http.Handler
	scoreStats *stats.Storage
	reqStats   *logging.Statistics
}

func newTestEnv(t *testing.T, maxBody int64) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	storage, err := stats.NewStorage(t.TempDir(), log)
	require.NoError(t, err)

	a := analyzer.New(analyzer.Options{CacheTTL: time.Minute, Stats: storage, Logger: log})
	t.Cleanup(func() { _ = a.Shutdown() })

	reqStats := logging.NewStatistics(true)
	handler := NewHandler(Options{
		Analyzer:       a,
		RequestStats:   reqStats,
		ScoreStats:     storage,
		Logger:         log,
		MaxBodyBytes:   maxBody,
		AllowedOrigins: []string{"https://cms.example.com"},
	})
	return &testEnv{handler: handler, scoreStats: storage, reqStats: reqStats}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	req := analyzer.Request{
		Content: article,
		Metadata: analyzer.Metadata{
			Title:        "Travel Cards Explained: How to Pick Your First Rewards Card",
			Slug:         "travel-cards-explained",
			FocusKeyword: "travel cards",
		},
	}

	w := env.do(http.MethodPost, "/api/analyze", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got analyzer.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	want := analyzer.AnalyzeContent(req.Content, req.Metadata, nil)
	assert.Equal(t, want.Scores, got.Scores)
	assert.Len(t, got.Recommendations, len(want.Recommendations))

	// second call is served from the cache
	env.do(http.MethodPost, "/api/analyze", req)
	current := env.scoreStats.GetCurrentStats()
	assert.Equal(t, 1, current.CacheHits)
	assert.Equal(t, 1, current.Analyses)

	popular := env.reqStats.GetPopularKeywords(1)
	require.Len(t, popular, 1)
	assert.Equal(t, logging.KeywordCount{Keyword: "travel cards", Count: 2}, popular[0])
}

func TestEngineEndpoints(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	t.Run("metrics", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/metrics", map[string]string{"content": article})
		require.Equal(t, http.StatusOK, w.Code)

		var got analyzer.TextMetrics
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, analyzer.ExtractMetrics(article), got)
	})

	t.Run("readability", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/readability", map[string]string{"content": ""})
		require.Equal(t, http.StatusOK, w.Code)

		var got analyzer.ReadabilityScores
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Not enough content", got.TargetAudience)
	})

	t.Run("keyword", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/keyword", map[string]interface{}{
			"content": article,
			"keyword": "travel cards",
			"corpus":  []string{"travel cards", "hotel points"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got analyzer.KeywordAnalysis
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 3, got.Frequency)
		require.NotNil(t, got.IDF)
	})

	t.Run("structure", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/structure", map[string]string{"html": article})
		require.Equal(t, http.StatusOK, w.Code)

		var got analyzer.ContentStructure
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Headings.H1)
		assert.Equal(t, 1, got.InternalLinks)
		assert.True(t, got.HasSemanticStructure)
	})
}

func TestMalformedJSON(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	for _, path := range []string{"/api/analyze", "/api/metrics", "/api/keyword"} {
		w := env.do(http.MethodPost, path, `{"content": `)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), `"error"`, path)
	}
}

func TestOversizedBody(t *testing.T) {
	env := newTestEnv(t, 256)

	w := env.do(http.MethodPost, "/api/analyze", map[string]string{"content": strings.Repeat("miles ", 200)})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestStatisticsEndpoints(t *testing.T) {
	env := newTestEnv(t, 1<<20)
	env.do(http.MethodPost, "/api/analyze", analyzer.Request{Content: article, Metadata: analyzer.Metadata{FocusKeyword: "miles"}})

	w := env.do(http.MethodGet, "/api/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "requests")
	assert.Contains(t, body, "cache")
	assert.Contains(t, body, "scoring")

	var scoring stats.MonthlyStats
	require.NoError(t, json.Unmarshal(body["scoring"], &scoring))
	assert.Equal(t, 1, scoring.Analyses)

	month := time.Now().Format("2006-01")
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/statistics/"+month, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/statistics/1999-01", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/statistics/last-month", nil).Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://cms.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, "https://cms.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
