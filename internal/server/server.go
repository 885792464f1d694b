// Package server is the HTTP face of the dashboard: the URL form, the report
// pages, the JSON API, the CSV export and the operational endpoints.
package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "tubepulse/internal/errors"
	"tubepulse/internal/models"
	"tubepulse/internal/reportcache"
	"tubepulse/shared/config"
)

// videoAnalyzer runs the full retrieve-enrich-aggregate pipeline for one URL.
// *analysis.Analyzer satisfies it.
type videoAnalyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*models.Report, error)
}

// insightsGenerator produces AI commentary for a finished report. Nil when no
// Gemini key is configured.
type insightsGenerator interface {
	SummarizeComments(ctx context.Context, report *models.Report) (*models.CommentInsights, error)
}

type Server struct {
	echo           *echo.Echo
	config         *config.Config
	analyzer       videoAnalyzer
	reports        *reportcache.Cache
	insights       insightsGenerator
	probe          youtubeHealthChecker
	startTime      time.Time
	indexTemplate  *template.Template
	reportTemplate *template.Template
}

func NewServer(cfg *config.Config, analyzer videoAnalyzer, reports *reportcache.Cache, probe youtubeHealthChecker, insights insightsGenerator) (*Server, error) {
	// Parse templates once at startup
	indexTmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	reportTmpl, err := template.ParseFiles("web/templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:           e,
		config:         cfg,
		analyzer:       analyzer,
		reports:        reports,
		insights:       insights,
		probe:          probe,
		startTime:      time.Now(),
		indexTemplate:  indexTmpl,
		reportTemplate: reportTmpl,
	}

	// Register routes
	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting dashboard server", "port", s.config.Server.Port)
	return s.echo.Start(fmt.Sprintf(":%d", s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
