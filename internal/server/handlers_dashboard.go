package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/labstack/echo/v4"

	"tubepulse/internal/models"
	"tubepulse/shared/youtube"
)

func (s *Server) handleIndex(c echo.Context) error {
	return renderTemplate(c, 200, s.indexTemplate, map[string]any{})
}

func (s *Server) handleAnalyzeForm(c echo.Context) error {
	rawURL := strings.TrimSpace(c.FormValue("url"))
	if rawURL == "" {
		return s.renderIndexError(c, 400, rawURL, "Paste a YouTube video URL first.")
	}

	report, err := s.analyzer.AnalyzeURL(c.Request().Context(), rawURL)
	if err != nil {
		// User outcomes come back as the form with a message; upstream
		// faults go to the error middleware.
		switch {
		case errors.Is(err, youtube.ErrInvalidVideoURL):
			return s.renderIndexError(c, 400, rawURL,
				"No video ID found in that URL. Use a link like https://www.youtube.com/watch?v=...")
		case errors.Is(err, youtube.ErrVideoNotFound):
			return s.renderIndexError(c, 404, rawURL,
				"Video not found. It may be private or deleted.")
		case errors.Is(err, youtube.ErrCommentsDisabled):
			return s.renderIndexError(c, 404, rawURL,
				"Comments are disabled for this video, so there is nothing to analyze.")
		default:
			return mapAnalysisError(err)
		}
	}

	s.attachInsights(c.Request().Context(), report)
	id := s.reports.Put(report)

	return c.Redirect(303, "/report/"+id)
}

func (s *Server) renderIndexError(c echo.Context, code int, rawURL, message string) error {
	return renderTemplate(c, code, s.indexTemplate, map[string]any{
		"URL":   rawURL,
		"Error": message,
	})
}

func (s *Server) handleReportPage(c echo.Context) error {
	report, ok := s.reports.Get(c.Param("id"))
	if !ok {
		return c.String(404, "Report not found or expired")
	}
	return renderTemplate(c, 200, s.reportTemplate, reportPageData(report))
}

// reportPageData assembles the template payload. Chart data goes in as one
// JSON blob the page scripts read directly.
func reportPageData(report *models.Report) map[string]any {
	chart, err := json.Marshal(map[string]any{
		"monthly":      report.Monthly,
		"window":       report.Window,
		"distribution": report.Distribution,
		"words":        report.TopWords,
	})
	if err != nil {
		// Report fields are plain structs and slices; this cannot fail on
		// real data.
		chart = []byte("{}")
	}

	data := map[string]any{
		"Report":         report,
		"ChartData":      template.JS(chart),
		"GeneratedAt":    report.GeneratedAt.Format("2006-01-02 15:04 UTC"),
		"EngagementRate": fmt.Sprintf("%.2f", report.EngagementRate),
		"PositiveShare":  0.0,
		"NegativeShare":  0.0,
	}
	if total := report.Distribution.Total(); total > 0 {
		data["PositiveShare"] = math.Round(float64(report.Distribution.Positive)/float64(total)*1000) / 10
		data["NegativeShare"] = math.Round(float64(report.Distribution.Negative)/float64(total)*1000) / 10
	}
	return data
}
