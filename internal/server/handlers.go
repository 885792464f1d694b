package server

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "tubepulse/internal/errors"
	"tubepulse/internal/models"
	"tubepulse/shared/youtube"
)

const insightsTimeout = 20 * time.Second

// renderTemplate renders a template to a buffer first to prevent partial HTML
// from being sent if template execution fails.
func renderTemplate(c echo.Context, code int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Template execution failed", "path", c.Request().URL.Path, "error", err)
		return c.String(500, "Failed to render page")
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// mapAnalysisError translates pipeline failures into structured errors for the
// error middleware. Anything that is not a recognized user outcome counts as
// an upstream fault.
func mapAnalysisError(err error) error {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, youtube.ErrVideoNotFound):
		return apperrors.NotFoundError("video not found")
	case errors.Is(err, youtube.ErrCommentsDisabled):
		return apperrors.NotFoundError("comments are disabled for this video")
	default:
		return apperrors.ExternalError("analysis failed", err)
	}
}

// attachInsights adds AI commentary when a generator is configured. A
// generation failure never blocks the report.
func (s *Server) attachInsights(ctx context.Context, report *models.Report) {
	if s.insights == nil || report.Empty() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, insightsTimeout)
	defer cancel()

	insights, err := s.insights.SummarizeComments(ctx, report)
	if err != nil {
		slog.Warn("Skipping AI insights after generation failure",
			"video_id", report.Video.ID, "error", err)
		return
	}
	report.Insights = insights
}
