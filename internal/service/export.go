package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/swimlog/internal/catalog"
)

// ErrUnsupportedExport is returned for an unknown export format.
var ErrUnsupportedExport = errors.New("unsupported export format")

// ExportFormat is an output encoding for the catalog.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportYAML ExportFormat = "yaml"
)

// ParseExportFormat maps a user string to an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, nil
	case "csv":
		return ExportCSV, nil
	case "yaml", "yml":
		return ExportYAML, nil
	}
	return "", fmt.Errorf("%w: %q (use json, csv or yaml)", ErrUnsupportedExport, s)
}

// ExportService writes the catalog in portable formats.
type ExportService struct {
	catalog *CatalogService
}

// NewExportService creates a new ExportService
func NewExportService(catalog *CatalogService) *ExportService {
	return &ExportService{catalog: catalog}
}

// Export writes the whole catalog to w.
func (s *ExportService) Export(w io.Writer, format ExportFormat) error {
	events, err := s.catalog.Events()
	if err != nil {
		return err
	}

	switch format {
	case ExportJSON:
		return exportJSON(w, events)
	case ExportCSV:
		return exportCSV(w, events)
	case ExportYAML:
		return exportYAML(w, events)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedExport, format)
}

func exportJSON(w io.Writer, events []catalog.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

// exportCSV writes one name,time row per recorded time under a header, the
// same layout import accepts. Events without times are not written.
func exportCSV(w io.Writer, events []catalog.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"event", "time"}); err != nil {
		return err
	}
	for _, ev := range events {
		for _, t := range ev.Times {
			if err := cw.Write([]string{ev.Name, t}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportYAML(w io.Writer, events []catalog.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(events); err != nil {
		return err
	}
	return enc.Close()
}
