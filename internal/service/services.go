// Package service provides the application layer for swimlog. It owns the
// event catalog and its persistence, providing one API for both the CLI
// and the TUI.
package service

import (
	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Catalog *CatalogService
	Chart   *ChartService
	Export  *ExportService
	Config  *ConfigService
	Stats   *StatsService
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	store, err := storage.DefaultFileStore()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(store, configPath, cfg), nil
}

// NewServicesWithStore creates a new Services instance over a custom store (useful for testing)
func NewServicesWithStore(store storage.Store, configPath string, cfg config.Config) *Services {
	catalogService := NewCatalogService(store, cfg)
	chartService := NewChartService(catalogService, cfg)
	exportService := NewExportService(catalogService)
	configService := NewConfigService(configPath, cfg)
	statsService := NewStatsService(catalogService)

	return &Services{
		Catalog: catalogService,
		Chart:   chartService,
		Export:  exportService,
		Config:  configService,
		Stats:   statsService,
	}
}
