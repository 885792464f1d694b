package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "tubepulse/internal/errors"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyzeAPI(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("request body must be JSON with a url field")
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return apperrors.ValidationError("url is required")
	}

	report, err := s.analyzer.AnalyzeURL(c.Request().Context(), rawURL)
	if err != nil {
		return mapAnalysisError(err)
	}

	s.attachInsights(c.Request().Context(), report)
	s.reports.Put(report)

	return c.JSON(200, report)
}

func (s *Server) handleReportAPI(c echo.Context) error {
	report, ok := s.reports.Get(c.Param("id"))
	if !ok {
		return apperrors.NotFoundError("report not found")
	}
	return c.JSON(200, report)
}
