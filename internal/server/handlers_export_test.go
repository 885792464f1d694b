package server

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubepulse/internal/models"
)

func getExportCSV(t *testing.T, srv *Server, id string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/report/"+id+"/export.csv", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, srv.handleExportCSV(c))
	return rec
}

func TestHandleExportCSV(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})
	id := srv.reports.Put(sampleReport())

	rec := getExportCSV(t, srv, id)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "comments_abc123.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Author", "Text", "Likes", "PublishedAt", "CleanedText", "Sentiment", "Polarity"}, rows[0])
	assert.Equal(t, []string{"alice", "Great video!", "12", "2024-01-16T10:00:00Z", "great video", "Positive", "0.8"}, rows[1])
	assert.Equal(t, []string{"bob", "Not my thing.", "1", "2024-02-02T08:30:00Z", "not my thing", "Negative", "-0.5"}, rows[2])
}

func TestHandleExportCSVEmptyReport(t *testing.T) {
	report := sampleReport()
	report.Comments = []models.CommentRecord{}

	srv := newTestServer(t, &mockAnalyzer{})
	id := srv.reports.Put(report)

	rec := getExportCSV(t, srv, id)
	assert.Equal(t, 200, rec.Code)

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty report exports the header row only")
	assert.Equal(t, "Author", rows[0][0])
}

func TestHandleExportCSVZeroTimestamp(t *testing.T) {
	report := sampleReport()
	report.Comments[0].PublishedAt = time.Time{}

	srv := newTestServer(t, &mockAnalyzer{})
	id := srv.reports.Put(report)

	rec := getExportCSV(t, srv, id)
	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", rows[1][3], "unparsed timestamps export as empty strings")
}

func TestHandleExportCSVUnknownID(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/report/missing/export.csv", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := srv.handleExportCSV(c)
	assert.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
}
