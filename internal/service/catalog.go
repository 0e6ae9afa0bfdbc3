package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/importer"
	"github.com/xolan/swimlog/internal/storage"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/view"
)

// Common errors for the catalog service
var (
	ErrNotHydrated          = errors.New("catalog has not been loaded")
	ErrEmptyTime            = errors.New("time cannot be empty")
	ErrNoSelection          = errors.New("no times selected")
	ErrBackupsNotSupported  = errors.New("store does not keep backups")
	ErrInvalidEventRef      = errors.New("invalid event reference")
	ErrInvalidSelectionText = errors.New("invalid selection")
)

// backupStore is implemented by stores that keep rotating backups.
type backupStore interface {
	Backups(key string) ([]storage.BackupInfo, error)
	Restore(key string, n int) error
}

// CatalogService owns the event catalog for the lifetime of the process.
// Every mutation is written through the mirror before it returns.
type CatalogService struct {
	mu       sync.Mutex
	mirror   *storage.Mirror
	config   config.Config
	catalog  *catalog.Catalog
	hydrated bool
	seeded   bool
}

// NewCatalogService creates a CatalogService over store. Call Open before
// any other method.
func NewCatalogService(store storage.Store, cfg config.Config) *CatalogService {
	return &CatalogService{
		mirror: storage.NewMirror(store),
		config: cfg,
	}
}

// Open loads the persisted catalog, or the seed catalog when nothing usable
// is stored. Calling it again is a no-op.
func (s *CatalogService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}
	s.load()
	return nil
}

func (s *CatalogService) load() {
	if events, ok := s.mirror.Load(); ok {
		s.catalog = catalog.New(events)
		s.seeded = false
	} else {
		s.catalog = catalog.Seed()
		s.seeded = true
	}
	s.hydrated = true
}

// Seeded reports whether the catalog came from the seed list rather than
// the store.
func (s *CatalogService) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeded
}

// save must be called with mu held.
func (s *CatalogService) save() error {
	if err := s.mirror.Save(s.catalog.Events()); err != nil {
		return err
	}
	s.seeded = false
	return nil
}

// ResolveEvent maps a user reference to an event name. The reference is
// either a 1-based event number or an exact event name.
func (s *CatalogService) ResolveEvent(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return "", ErrNotHydrated
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrInvalidEventRef
	}
	if s.catalog.Index(ref) >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		names := s.catalog.Names()
		if n < 1 || n > len(names) {
			return "", fmt.Errorf("%w: %d (valid: 1-%d)", catalog.ErrEventIndexOutOfRange, n, len(names))
		}
		return names[n-1], nil
	}
	return "", fmt.Errorf("%w: %q", catalog.ErrEventNotFound, ref)
}

// AddTime appends text to the named event's times. With strict_times
// enabled, text must decode as minutes.seconds.hundredths.
func (s *CatalogService) AddTime(name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return ErrNotHydrated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTime
	}
	if s.config.StrictTimes {
		if _, err := swimtime.Parse(text); err != nil {
			return err
		}
	}

	if err := s.catalog.AppendTime(name, text); err != nil {
		return err
	}
	return s.save()
}

// DeleteSelected removes the selected times in one batch and returns how
// many were removed.
func (s *CatalogService) DeleteSelected(selections []catalog.Selection) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return 0, ErrNotHydrated
	}
	if len(selections) == 0 {
		return 0, ErrNoSelection
	}

	removed := s.catalog.DeleteTimesAt(selections)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

// ClearEvent removes every time of the event at eventIndex (0-based).
func (s *CatalogService) ClearEvent(eventIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return ErrNotHydrated
	}
	if err := s.catalog.ClearTimes(eventIndex); err != nil {
		return err
	}
	return s.save()
}

// Import merges rows into the catalog.
func (s *CatalogService) Import(rows []importer.Row) (catalog.MergeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return catalog.MergeSummary{}, ErrNotHydrated
	}
	return s.merge(rows)
}

// ImportFile reads a spreadsheet, parses its rows and merges them. The whole
// pipeline runs under the service lock.
func (s *CatalogService) ImportFile(path string) (catalog.MergeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return catalog.MergeSummary{}, ErrNotHydrated
	}

	table, err := importer.ReadTable(path)
	if err != nil {
		return catalog.MergeSummary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	rows := importer.ParseRows(table)

	summary, err := s.merge(rows)
	// Rows dropped by ParseRows never reach MergeImport
	if len(table) > 1 {
		summary.Skipped += len(table) - 1 - len(rows)
	}
	return summary, err
}

// merge must be called with mu held.
func (s *CatalogService) merge(rows []importer.Row) (catalog.MergeSummary, error) {
	summary := s.catalog.MergeImport(rows)
	if summary.Rows() == 0 {
		return summary, nil
	}
	return summary, s.save()
}

// Events returns a snapshot of the catalog.
func (s *CatalogService) Events() ([]catalog.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return nil, ErrNotHydrated
	}
	return s.catalog.Events(), nil
}

// Table returns the table projection of the current catalog.
func (s *CatalogService) Table() ([]view.TableRow, error) {
	events, err := s.Events()
	if err != nil {
		return nil, err
	}
	return view.ToTable(events), nil
}

// Series returns the chart projection using the configured axis mode.
func (s *CatalogService) Series() (view.Chart, error) {
	events, err := s.Events()
	if err != nil {
		return view.Chart{}, err
	}
	return view.ToSeries(events, view.ParseAxisMode(s.config.AxisMode)), nil
}

// Health reports on the stored catalog without loading it.
func (s *CatalogService) Health() (storage.Health, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Health()
}

// Location returns where the catalog is stored, or "" for stores without
// a file location.
func (s *CatalogService) Location() string {
	ps, ok := s.mirror.Store.(interface {
		Path(key string) (string, error)
	})
	if !ok {
		return ""
	}
	path, err := ps.Path(s.mirror.StoreKey())
	if err != nil {
		return ""
	}
	return path
}

// Backups lists the available backups, most recent first.
func (s *CatalogService) Backups() ([]storage.BackupInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, ok := s.mirror.Store.(backupStore)
	if !ok {
		return nil, ErrBackupsNotSupported
	}
	return bs.Backups(s.mirror.StoreKey())
}

// Restore replaces the stored catalog with backup n and reloads it.
func (s *CatalogService) Restore(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, ok := s.mirror.Store.(backupStore)
	if !ok {
		return ErrBackupsNotSupported
	}
	if err := bs.Restore(s.mirror.StoreKey(), n); err != nil {
		return err
	}
	s.load()
	return nil
}

// ParseSelection parses a 1-based "event:time" coordinate.
func ParseSelection(text string) (catalog.Selection, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return catalog.Selection{}, fmt.Errorf("%w %q: expected <event>:<time>", ErrInvalidSelectionText, text)
	}

	e, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || e < 1 {
		return catalog.Selection{}, fmt.Errorf("%w %q: event number must be a positive integer", ErrInvalidSelectionText, text)
	}
	t, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || t < 1 {
		return catalog.Selection{}, fmt.Errorf("%w %q: time number must be a positive integer", ErrInvalidSelectionText, text)
	}

	return catalog.Selection{EventIndex: e - 1, TimeIndex: t - 1}, nil
}
