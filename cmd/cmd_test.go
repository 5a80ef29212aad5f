package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/config"
	"github.com/seo-optimizer/contentscore/output"
)

const draft = `---
title: Travel Cards for Beginners
slug: travel-cards-for-beginners
keyword: travel cards
---
# Travel Cards for Beginners

Travel cards earn points on every purchase. The best travel cards waive foreign fees.
`

func writeDraft(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.md")
	require.NoError(t, os.WriteFile(path, []byte(draft), 0644))
	return path
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeConsole(t *testing.T) {
	path := writeDraft(t)

	out, err := run("analyze", path)
	require.NoError(t, err)

	assert.Contains(t, out, path)
	assert.Contains(t, out, "/100")
	assert.Contains(t, out, "Missing Meta Description")
}

func TestAnalyzeJSONWithOverrides(t *testing.T) {
	path := writeDraft(t)

	out, err := run("analyze", path, "--format", "json",
		"--keyword", "foreign fees",
		"--description", "Learn how travel cards earn points and which cards skip foreign fees.")
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, path, report.File)
	assert.Equal(t, "foreign fees", report.Result.Metrics.FocusKeyword.Keyword)
	assert.Equal(t, 1, report.Result.Metrics.FocusKeyword.Frequency)

	for _, rec := range report.Result.Recommendations {
		assert.NotEqual(t, "Missing Meta Description", rec.Title)
	}
}

func TestApplyFlagsKeepsFrontMatter(t *testing.T) {
	cmd := newAnalyzeCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--slug", "new-slug", "--secondary", "annual fee,lounge access"}))

	opts := &analyzeOptions{slug: "new-slug", secondary: []string{"annual fee", "lounge access"}}
	got := opts.applyFlags(cmd, analyzer.Metadata{Title: "Kept", Slug: "old-slug"})

	assert.Equal(t, analyzer.Metadata{
		Title:             "Kept",
		Slug:              "new-slug",
		SecondaryKeywords: []string{"annual fee", "lounge access"},
	}, got)
}

func TestAnalyzeFailUnder(t *testing.T) {
	path := writeDraft(t)

	_, err := run("analyze", path, "--fail-under", "101")

	var scoreErr *ScoreError
	require.True(t, errors.As(err, &scoreErr))
	assert.Equal(t, []string{path}, scoreErr.Failed)

	_, err = run("analyze", path, "--fail-under", "0")
	assert.NoError(t, err)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := run("analyze")
	assert.Error(t, err)

	_, err = run("analyze", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)

	_, err = run("analyze", writeDraft(t), "--format", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestKeywordCommand(t *testing.T) {
	path := writeDraft(t)

	out, err := run("keyword", path, "travel cards")
	require.NoError(t, err)

	var got analyzer.KeywordAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "travel cards", got.Keyword)
	assert.Equal(t, 3, got.Frequency)
	assert.Nil(t, got.IDF)
}

func TestBuildServices(t *testing.T) {
	cfg := &config.Config{
		Port:                 "8099",
		GinMode:              "test",
		DataDir:              t.TempDir(),
		LogLevel:             "error",
		LogFormat:            "json",
		RateLimit:            10,
		RateBurst:            10,
		CacheTTL:             time.Minute,
		CacheCleanup:         time.Minute,
		AllowedOrigins:       []string{"*"},
		MaxBodyBytes:         1 << 20,
		StatsRetentionMonths: 12,
	}

	svc, err := buildServices(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.analyzer.Shutdown() })

	assert.Equal(t, ":8099", svc.server.Addr)

	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	cfg.LogLevel = "loud"
	_, err = buildServices(cfg)
	assert.Error(t, err)
}
