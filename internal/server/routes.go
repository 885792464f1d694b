package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Dashboard pages
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/analyze", s.handleAnalyzeForm)
	s.echo.GET("/report/:id", s.handleReportPage)
	s.echo.GET("/report/:id/export.csv", s.handleExportCSV)

	// JSON API
	s.echo.POST("/api/analyze", s.handleAnalyzeAPI)
	s.echo.GET("/api/reports/:id", s.handleReportAPI)
}
