package server

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	apperrors "tubepulse/internal/errors"
	"tubepulse/internal/models"
	"tubepulse/internal/reportcache"
	"tubepulse/shared/config"
)

// --- Mock implementations ---

type mockAnalyzer struct {
	report *models.Report
	err    error
	gotURL string
}

func (m *mockAnalyzer) AnalyzeURL(_ context.Context, rawURL string) (*models.Report, error) {
	m.gotURL = rawURL
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type mockInsights struct {
	insights *models.CommentInsights
	err      error
	calls    int
}

func (m *mockInsights) SummarizeComments(_ context.Context, _ *models.Report) (*models.CommentInsights, error) {
	m.calls++
	return m.insights, m.err
}

type mockProbe struct {
	err error
}

func (m *mockProbe) Ping(_ context.Context) error {
	return m.err
}

// --- Test helpers ---

func newTestServer(t *testing.T, analyzer videoAnalyzer, opts ...func(*Server)) *Server {
	t.Helper()

	indexTmpl := template.Must(template.New("index.html").Parse(
		`Index{{with .Error}} error: {{.}}{{end}}`))
	reportTmpl := template.Must(template.New("report.html").Parse(
		`Report {{.Report.Video.Title}} engagement {{.EngagementRate}}`))

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:           e,
		config:         &config.Config{},
		analyzer:       analyzer,
		reports:        reportcache.New(time.Hour, clockwork.NewRealClock()),
		probe:          &mockProbe{},
		startTime:      time.Now(),
		indexTemplate:  indexTmpl,
		reportTemplate: reportTmpl,
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withInsights(insights insightsGenerator) func(*Server) {
	return func(s *Server) {
		s.insights = insights
	}
}

func withProbe(probe youtubeHealthChecker) func(*Server) {
	return func(s *Server) {
		s.probe = probe
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func sampleReport() *models.Report {
	return &models.Report{
		GeneratedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		Engine:      "vader",
		Video: models.VideoSummary{
			ID:           "abc123",
			Title:        "Launch Recap",
			ChannelTitle: "Space Stuff",
			PublishedAt:  time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
			ViewCount:    1000,
			LikeCount:    120,
			CommentCount: 30,
			URL:          "https://www.youtube.com/watch?v=abc123",
		},
		Comments: []models.CommentRecord{
			{
				Author:      "alice",
				Text:        "Great video!",
				LikeCount:   12,
				PublishedAt: time.Date(2024, time.January, 16, 10, 0, 0, 0, time.UTC),
				CleanedText: "great video",
				Sentiment:   models.SentimentPositive,
				Polarity:    0.8,
			},
			{
				Author:      "bob",
				Text:        "Not my thing.",
				LikeCount:   1,
				PublishedAt: time.Date(2024, time.February, 2, 8, 30, 0, 0, time.UTC),
				CleanedText: "not my thing",
				Sentiment:   models.SentimentNegative,
				Polarity:    -0.5,
			},
		},
		EngagementRate: 15.0,
		Distribution:   models.SentimentDistribution{Positive: 1, Negative: 1},
		Monthly: []models.MonthlyBucket{
			{Month: "2024-01", Count: 1},
			{Month: "2024-02", Count: 1},
		},
		Window: models.WindowActivity{
			Months: 6,
			Buckets: []models.MonthlyBucket{
				{Month: "2024-01", Count: 1},
				{Month: "2024-02", Count: 1},
			},
			Total: 2,
		},
		TopPositive: []models.CommentRecord{
			{Author: "alice", Text: "Great video!", LikeCount: 12, Sentiment: models.SentimentPositive, Polarity: 0.8},
		},
		TopNegative: []models.CommentRecord{
			{Author: "bob", Text: "Not my thing.", LikeCount: 1, Sentiment: models.SentimentNegative, Polarity: -0.5},
		},
		TopWords: []models.WordCount{
			{Word: "video", Count: 1},
		},
		Corpus: "great video not my thing",
	}
}
