package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "tubepulse/internal/errors"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{"Author", "Text", "Likes", "PublishedAt", "CleanedText", "Sentiment", "Polarity"}

func (s *Server) handleExportCSV(c echo.Context) error {
	report, ok := s.reports.Get(c.Param("id"))
	if !ok {
		return c.String(404, "Report not found or expired")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := make([][]string, 0, len(report.Comments)+1)
	rows = append(rows, csvHeader)
	for _, comment := range report.Comments {
		rows = append(rows, []string{
			comment.Author,
			comment.Text,
			strconv.FormatInt(comment.LikeCount, 10),
			formatPublishedAt(comment.PublishedAt),
			comment.CleanedText,
			string(comment.Sentiment),
			strconv.FormatFloat(comment.Polarity, 'g', -1, 64),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return apperrors.InternalError("failed to encode CSV export", err)
	}

	filename := fmt.Sprintf("comments_%s.csv", report.Video.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(200, "text/csv; charset=utf-8", buf.Bytes())
}

func formatPublishedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
