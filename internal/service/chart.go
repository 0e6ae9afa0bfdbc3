package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/view"
)

// DefaultChartName is the file name used when no output path is given.
const DefaultChartName = "swimlog-chart"

// ChartService renders the progress chart of the current catalog.
type ChartService struct {
	catalog *CatalogService
	config  config.Config
}

// NewChartService creates a new ChartService
func NewChartService(catalog *CatalogService, cfg config.Config) *ChartService {
	return &ChartService{
		catalog: catalog,
		config:  cfg,
	}
}

// Options returns the render options from config for the given format.
// An empty format uses the configured chart_format.
func (s *ChartService) Options(format view.ImageFormat) view.RenderOptions {
	if format == "" {
		format = view.ImageFormat(s.config.ChartFormat)
	}
	return view.RenderOptions{
		Format: format,
		Width:  s.config.ChartWidth,
		Height: s.config.ChartHeight,
		Title:  s.config.ChartTitle,
	}
}

// Render writes the chart to w.
func (s *ChartService) Render(w io.Writer, format view.ImageFormat) error {
	c, err := s.catalog.Series()
	if err != nil {
		return err
	}
	return view.Render(c, w, s.Options(format))
}

// WriteFile renders the chart to path and returns the path written. The
// format follows the file extension when it is .png or .svg, otherwise the
// configured format. An empty path writes DefaultChartName in the current
// directory. Nothing is written when rendering fails.
func (s *ChartService) WriteFile(path string) (string, error) {
	format := FormatFromPath(path)
	if format == "" {
		format = view.ImageFormat(s.config.ChartFormat)
	}
	if path == "" {
		path = DefaultChartName + "." + string(format)
	}

	var buf bytes.Buffer
	if err := s.Render(&buf, format); err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return path, nil
}

// FormatFromPath returns the image format implied by path's extension, or
// "" when the extension is not a chart format.
func FormatFromPath(path string) view.ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return view.PNG
	case ".svg":
		return view.SVG
	}
	return ""
}
