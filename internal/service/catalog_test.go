package service

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/importer"
	"github.com/xolan/swimlog/internal/storage"
	"github.com/xolan/swimlog/internal/swimtime"
	"github.com/xolan/swimlog/internal/view"
)

// newOpenCatalog returns an opened CatalogService over store.
func newOpenCatalog(t *testing.T, store storage.Store, cfg config.Config) *CatalogService {
	t.Helper()
	svc := NewCatalogService(store, cfg)
	if err := svc.Open(); err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	return svc
}

// seedStore returns a MemoryStore holding events.
func seedStore(t *testing.T, events []catalog.Event) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := storage.NewMirror(store).Save(events); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

// failingStore reads like an empty store and fails every write.
type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (failingStore) Put(string, []byte) error        { return errors.New("disk full") }

func TestCatalogService_NotHydrated(t *testing.T) {
	svc := NewCatalogService(storage.NewMemoryStore(), config.DefaultConfig())

	tests := []struct {
		name string
		call func() error
	}{
		{"AddTime", func() error { return svc.AddTime("50 free", "1.00.00") }},
		{"DeleteSelected", func() error {
			_, err := svc.DeleteSelected([]catalog.Selection{{EventIndex: 0, TimeIndex: 0}})
			return err
		}},
		{"ClearEvent", func() error { return svc.ClearEvent(0) }},
		{"Import", func() error {
			_, err := svc.Import([]importer.Row{{Name: "50 free", Time: "1.00.00"}})
			return err
		}},
		{"ImportFile", func() error {
			_, err := svc.ImportFile("missing.csv")
			return err
		}},
		{"Events", func() error {
			_, err := svc.Events()
			return err
		}},
		{"Table", func() error {
			_, err := svc.Table()
			return err
		}},
		{"Series", func() error {
			_, err := svc.Series()
			return err
		}},
		{"ResolveEvent", func() error {
			_, err := svc.ResolveEvent("1")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrNotHydrated) {
				t.Errorf("%s before Open: got %v, expected ErrNotHydrated", tt.name, err)
			}
		})
	}
}

func TestCatalogService_Open_Seeds(t *testing.T) {
	tests := []struct {
		name  string
		store storage.Store
	}{
		{"empty store", storage.NewMemoryStore()},
		{"corrupt blob", func() storage.Store {
			s := storage.NewMemoryStore()
			_ = s.Put(storage.EventsKey, []byte("{not json"))
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newOpenCatalog(t, tt.store, config.DefaultConfig())

			events, err := svc.Events()
			if err != nil {
				t.Fatalf("Events() returned error: %v", err)
			}
			if len(events) != len(catalog.SeedNames) {
				t.Fatalf("got %d events, expected %d", len(events), len(catalog.SeedNames))
			}
			if len(events[0].Times) != 1 || events[0].Times[0] != catalog.SeedTime {
				t.Errorf("first event times = %v, expected [%s]", events[0].Times, catalog.SeedTime)
			}
			if !svc.Seeded() {
				t.Error("Seeded() = false, expected true")
			}
		})
	}
}

func TestCatalogService_Open_LoadsStored(t *testing.T) {
	stored := []catalog.Event{
		{Name: "50 free", Times: []string{"0.30.00", "0.29.00"}},
		{Name: "Open water", Times: []string{}},
	}
	svc := newOpenCatalog(t, seedStore(t, stored), config.DefaultConfig())

	events, _ := svc.Events()
	if len(events) != 2 || events[1].Name != "Open water" || len(events[0].Times) != 2 {
		t.Errorf("Events() = %+v, expected stored events", events)
	}
	if svc.Seeded() {
		t.Error("Seeded() = true for stored catalog")
	}
}

func TestCatalogService_Open_Idempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	if err := svc.AddTime("100 free", "1.05.00"); err != nil {
		t.Fatalf("AddTime() returned error: %v", err)
	}
	// A second Open must not reload and drop nothing
	if err := svc.Open(); err != nil {
		t.Fatalf("second Open() returned error: %v", err)
	}

	events, _ := svc.Events()
	if len(events[1].Times) != 1 {
		t.Errorf("second Open() changed state: %+v", events[1])
	}
}

func TestCatalogService_AddTime_Persists(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	if err := svc.AddTime("50 free", "0.59.10"); err != nil {
		t.Fatalf("AddTime() returned error: %v", err)
	}

	stored, ok := storage.NewMirror(store).Load()
	if !ok {
		t.Fatal("nothing persisted after AddTime")
	}
	expected := []string{catalog.SeedTime, "0.59.10"}
	if len(stored[0].Times) != 2 || stored[0].Times[0] != expected[0] || stored[0].Times[1] != expected[1] {
		t.Errorf("stored times = %v, expected %v", stored[0].Times, expected)
	}
	if svc.Seeded() {
		t.Error("Seeded() = true after a save")
	}
}

func TestCatalogService_AddTime_UnknownEvent(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	err := svc.AddTime("25 doggy", "0.20.00")
	if !errors.Is(err, catalog.ErrEventNotFound) {
		t.Errorf("AddTime() error = %v, expected ErrEventNotFound", err)
	}
	if _, found, _ := store.Get(storage.EventsKey); found {
		t.Error("failed AddTime wrote to the store")
	}
}

func TestCatalogService_AddTime_Validation(t *testing.T) {
	tests := []struct {
		name        string
		strict      bool
		text        string
		expectedErr error
	}{
		{"empty", false, "  ", ErrEmptyTime},
		{"malformed lenient", false, "1:05.32", nil},
		{"malformed strict", true, "1:05.32", swimtime.ErrInvalidFormat},
		{"valid strict", true, "1.05.32", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.StrictTimes = tt.strict
			svc := newOpenCatalog(t, storage.NewMemoryStore(), cfg)

			err := svc.AddTime("100 free", tt.text)
			if tt.expectedErr == nil {
				if err != nil {
					t.Fatalf("AddTime(%q) returned error: %v", tt.text, err)
				}
				events, _ := svc.Events()
				if events[1].Times[0] != tt.text {
					t.Errorf("stored %q, expected the text as entered %q", events[1].Times[0], tt.text)
				}
				return
			}
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("AddTime(%q) error = %v, expected %v", tt.text, err, tt.expectedErr)
			}
		})
	}
}

func TestCatalogService_AddTime_SaveFailure(t *testing.T) {
	svc := newOpenCatalog(t, failingStore{}, config.DefaultConfig())

	if err := svc.AddTime("100 free", "1.00.00"); err == nil {
		t.Fatal("AddTime() should report the failed save")
	}

	// The in-memory catalog keeps the mutation
	events, _ := svc.Events()
	if len(events[1].Times) != 1 {
		t.Errorf("in-memory times = %v, expected the appended time", events[1].Times)
	}
}

func TestCatalogService_DeleteSelected(t *testing.T) {
	stored := []catalog.Event{
		{Name: "50 free", Times: []string{"a", "b", "c"}},
		{Name: "100 free", Times: []string{"d"}},
	}

	orders := [][]catalog.Selection{
		{{EventIndex: 0, TimeIndex: 0}, {EventIndex: 0, TimeIndex: 2}},
		{{EventIndex: 0, TimeIndex: 2}, {EventIndex: 0, TimeIndex: 0}},
	}

	for _, sel := range orders {
		store := seedStore(t, stored)
		svc := newOpenCatalog(t, store, config.DefaultConfig())

		removed, err := svc.DeleteSelected(sel)
		if err != nil {
			t.Fatalf("DeleteSelected(%v) returned error: %v", sel, err)
		}
		if removed != 2 {
			t.Errorf("removed = %d, expected 2", removed)
		}

		persisted, _ := storage.NewMirror(store).Load()
		if len(persisted[0].Times) != 1 || persisted[0].Times[0] != "b" {
			t.Errorf("persisted times = %v, expected [b]", persisted[0].Times)
		}
		if len(persisted[1].Times) != 1 {
			t.Errorf("other event changed: %v", persisted[1].Times)
		}
	}
}

func TestCatalogService_DeleteSelected_Empty(t *testing.T) {
	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	if _, err := svc.DeleteSelected(nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("DeleteSelected(nil) error = %v, expected ErrNoSelection", err)
	}
}

func TestCatalogService_DeleteSelected_NothingInRange(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	removed, err := svc.DeleteSelected([]catalog.Selection{{EventIndex: 5, TimeIndex: 3}})
	if err != nil || removed != 0 {
		t.Errorf("DeleteSelected() = %d, %v, expected 0, nil", removed, err)
	}
	if _, found, _ := store.Get(storage.EventsKey); found {
		t.Error("no-op delete wrote to the store")
	}
}

func TestCatalogService_ClearEvent(t *testing.T) {
	stored := []catalog.Event{
		{Name: "50 free", Times: []string{"a", "b"}},
		{Name: "100 free", Times: []string{"c"}},
	}
	store := seedStore(t, stored)
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	if err := svc.ClearEvent(0); err != nil {
		t.Fatalf("ClearEvent() returned error: %v", err)
	}

	persisted, _ := storage.NewMirror(store).Load()
	if len(persisted[0].Times) != 0 {
		t.Errorf("event 0 times = %v, expected empty", persisted[0].Times)
	}
	if len(persisted[1].Times) != 1 || persisted[1].Times[0] != "c" {
		t.Errorf("event 1 times = %v, expected [c]", persisted[1].Times)
	}

	if err := svc.ClearEvent(7); !errors.Is(err, catalog.ErrEventIndexOutOfRange) {
		t.Errorf("ClearEvent(7) error = %v, expected ErrEventIndexOutOfRange", err)
	}
}

func TestCatalogService_Import(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	rows := []importer.Row{
		{Name: "50 free", Time: "0.31.00"},
		{Name: "Relay", Time: "2.00.00"},
		{Name: "Relay", Time: "1.58.00"},
	}
	summary, err := svc.Import(rows)
	if err != nil {
		t.Fatalf("Import() returned error: %v", err)
	}
	if summary.Appended != 2 || len(summary.Created) != 1 || summary.Created[0] != "Relay" {
		t.Errorf("summary = %+v", summary)
	}

	persisted, _ := storage.NewMirror(store).Load()
	last := persisted[len(persisted)-1]
	if last.Name != "Relay" || len(last.Times) != 2 || last.Times[1] != "1.58.00" {
		t.Errorf("last event = %+v", last)
	}
}

func TestCatalogService_ImportFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "times.csv")
	content := "Event,Time\n50 free,0.30.50\n,0.29.00\n100 free\nNew event,1.00.00\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	summary, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() returned error: %v", err)
	}
	if summary.Appended != 1 || len(summary.Created) != 1 || summary.Skipped != 2 {
		t.Errorf("summary = %+v, expected 1 appended, 1 created, 2 skipped", summary)
	}
}

func TestCatalogService_ImportFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	unsupported := filepath.Join(tmpDir, "times.pdf")
	if err := os.WriteFile(unsupported, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	if _, err := svc.ImportFile(unsupported); !errors.Is(err, importer.ErrUnsupportedFormat) {
		t.Errorf("ImportFile(.pdf) error = %v, expected ErrUnsupportedFormat", err)
	}
	if _, err := svc.ImportFile(filepath.Join(tmpDir, "missing.csv")); err == nil {
		t.Error("ImportFile() should fail for a missing file")
	}
}

func TestCatalogService_TableAndSeries(t *testing.T) {
	stored := []catalog.Event{
		{Name: "50 free", Times: []string{"0.30.00"}},
		{Name: "100 free", Times: []string{"1.05.00", "1.04.00"}},
	}

	cfg := config.DefaultConfig()
	cfg.AxisMode = config.AxisLongest
	svc := newOpenCatalog(t, seedStore(t, stored), cfg)

	rows, err := svc.Table()
	if err != nil {
		t.Fatalf("Table() returned error: %v", err)
	}
	if view.TimeCount(rows) != 3 {
		t.Errorf("Table() has %d cells, expected 3", view.TimeCount(rows))
	}

	c, err := svc.Series()
	if err != nil {
		t.Fatalf("Series() returned error: %v", err)
	}
	if len(c.Labels) != 2 {
		t.Errorf("Series() labels = %v, expected two with axis_mode longest", c.Labels)
	}
}

func TestCatalogService_ResolveEvent(t *testing.T) {
	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	tests := []struct {
		ref         string
		expected    string
		expectedErr error
	}{
		{"1", "50 free", nil},
		{"18", "400 IM", nil},
		{"100 back", "100 back", nil},
		{" 200 IM ", "200 IM", nil},
		{"0", "", catalog.ErrEventIndexOutOfRange},
		{"19", "", catalog.ErrEventIndexOutOfRange},
		{"25 doggy", "", catalog.ErrEventNotFound},
		{"", "", ErrInvalidEventRef},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := svc.ResolveEvent(tt.ref)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("ResolveEvent(%q) error = %v, expected %v", tt.ref, err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveEvent(%q) returned error: %v", tt.ref, err)
			}
			if got != tt.expected {
				t.Errorf("ResolveEvent(%q) = %q, expected %q", tt.ref, got, tt.expected)
			}
		})
	}
}

func TestCatalogService_Health(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	health, err := svc.Health()
	if err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if health.Exists {
		t.Error("Health().Exists = true before any save")
	}

	if err := svc.AddTime("50 free", "0.30.00"); err != nil {
		t.Fatal(err)
	}
	health, _ = svc.Health()
	if !health.Exists || !health.Valid || health.EventCount != 18 || health.TimeCount != 2 {
		t.Errorf("Health() = %+v", health)
	}
}

func TestCatalogService_BackupsAndRestore(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	svc := newOpenCatalog(t, store, config.DefaultConfig())

	if err := svc.AddTime("50 free", "0.40.00"); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddTime("50 free", "0.39.00"); err != nil {
		t.Fatal(err)
	}

	backups, err := svc.Backups()
	if err != nil {
		t.Fatalf("Backups() returned error: %v", err)
	}
	if len(backups) != 1 || backups[0].Number != 1 {
		t.Fatalf("Backups() = %+v, expected one backup", backups)
	}

	if err := svc.Restore(1); err != nil {
		t.Fatalf("Restore(1) returned error: %v", err)
	}

	events, _ := svc.Events()
	if len(events[0].Times) != 2 || events[0].Times[1] != "0.40.00" {
		t.Errorf("after restore times = %v, expected [%s 0.40.00]", events[0].Times, catalog.SeedTime)
	}
}

func TestCatalogService_Backups_NotSupported(t *testing.T) {
	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	if _, err := svc.Backups(); !errors.Is(err, ErrBackupsNotSupported) {
		t.Errorf("Backups() error = %v, expected ErrBackupsNotSupported", err)
	}
	if err := svc.Restore(1); !errors.Is(err, ErrBackupsNotSupported) {
		t.Errorf("Restore() error = %v, expected ErrBackupsNotSupported", err)
	}
}

func TestCatalogService_ConcurrentAdds(t *testing.T) {
	svc := newOpenCatalog(t, storage.NewMemoryStore(), config.DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.AddTime("200 free", "2.20.00")
		}()
	}
	wg.Wait()

	events, _ := svc.Events()
	if len(events[2].Times) != 20 {
		t.Errorf("got %d times, expected 20", len(events[2].Times))
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input    string
		expected catalog.Selection
		wantErr  bool
	}{
		{"1:1", catalog.Selection{EventIndex: 0, TimeIndex: 0}, false},
		{"3:12", catalog.Selection{EventIndex: 2, TimeIndex: 11}, false},
		{" 2 : 4 ", catalog.Selection{EventIndex: 1, TimeIndex: 3}, false},
		{"0:1", catalog.Selection{}, true},
		{"1:0", catalog.Selection{}, true},
		{"1", catalog.Selection{}, true},
		{"a:b", catalog.Selection{}, true},
		{"1:2:3", catalog.Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSelection(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSelectionText) {
					t.Errorf("ParseSelection(%q) error = %v, expected ErrInvalidSelectionText", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSelection(%q) = %+v, expected %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCatalogService_Location(t *testing.T) {
	dir := t.TempDir()
	fileSvc := NewCatalogService(storage.NewFileStore(dir), config.DefaultConfig())
	if got, expected := fileSvc.Location(), filepath.Join(dir, "events.json"); got != expected {
		t.Errorf("Location() = %q, expected %q", got, expected)
	}

	memSvc := NewCatalogService(storage.NewMemoryStore(), config.DefaultConfig())
	if got := memSvc.Location(); got != "" {
		t.Errorf("Location() = %q for memory store, expected empty", got)
	}
}
