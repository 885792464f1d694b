package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/internal/models"
	"tubepulse/shared/youtube"
)

func postAnalyzeJSON(srv *Server, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	return rec, callHandler(srv.handleAnalyzeAPI, c)
}

// --- handleAnalyzeAPI tests ---

func TestHandleAnalyzeAPI(t *testing.T) {
	analyzer := &mockAnalyzer{report: sampleReport()}
	srv := newTestServer(t, analyzer)

	rec, err := postAnalyzeJSON(srv, `{"url": "https://www.youtube.com/watch?v=abc123"}`)
	assert.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", analyzer.gotURL)

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "abc123", report.Video.ID)
	assert.Equal(t, 15.0, report.EngagementRate)
	assert.Len(t, report.Comments, 2)

	// The cache assigned the ID, so the report is fetchable afterwards.
	require.NotEmpty(t, report.ID)
	_, ok := srv.reports.Get(report.ID)
	assert.True(t, ok)
}

func TestHandleAnalyzeAPIMissingURL(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	rec, err := postAnalyzeJSON(srv, `{"url": "  "}`)
	assert.NoError(t, err)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "url is required")
}

func TestHandleAnalyzeAPIMalformedBody(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	rec, err := postAnalyzeJSON(srv, `{"url": `)
	assert.NoError(t, err)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestHandleAnalyzeAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "invalid URL",
			err:        fmt.Errorf("parse %q: %w", "junk", youtube.ErrInvalidVideoURL),
			wantStatus: 400,
			wantType:   "validation",
		},
		{
			name:       "video not found",
			err:        fmt.Errorf("video gone: %w", youtube.ErrVideoNotFound),
			wantStatus: 404,
			wantType:   "not_found",
		},
		{
			name:       "comments disabled",
			err:        fmt.Errorf("video abc123: %w", youtube.ErrCommentsDisabled),
			wantStatus: 404,
			wantType:   "not_found",
		},
		{
			name:       "upstream fault",
			err:        fmt.Errorf("quota exceeded"),
			wantStatus: 502,
			wantType:   "external",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockAnalyzer{err: tt.err})

			rec, err := postAnalyzeJSON(srv, `{"url": "https://www.youtube.com/watch?v=abc123"}`)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantType)
		})
	}
}

// --- handleReportAPI tests ---

func TestHandleReportAPI(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})
	id := srv.reports.Put(sampleReport())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := callHandler(srv.handleReportAPI, c)
	assert.NoError(t, err)
	assert.Equal(t, 200, rec.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, id, report.ID)
	assert.Equal(t, "Launch Recap", report.Video.Title)
}

func TestHandleReportAPIUnknownID(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := callHandler(srv.handleReportAPI, c)
	assert.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "report not found")
}
