package storage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xolan/swimlog/internal/catalog"
)

// failingStore returns err from every call.
type failingStore struct {
	err error
}

func (s failingStore) Get(string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Put(string, []byte) error         { return s.err }

func TestMirror_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		events []catalog.Event
	}{
		{
			name:   "seed catalog",
			events: catalog.Seed().Events(),
		},
		{
			name: "order of events and times kept",
			events: []catalog.Event{
				{Name: "400 IM", Times: []string{"5.10.00", "5.02.33", "1.0.0", "junk"}},
				{Name: "50 free", Times: []string{}},
				{Name: "100 fly \"open\"", Times: []string{"1.01.01"}},
			},
		},
		{
			name:   "empty catalog",
			events: []catalog.Event{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, store := range []Store{NewMemoryStore(), NewFileStore(t.TempDir())} {
				m := NewMirror(store)
				if err := m.Save(tt.events); err != nil {
					t.Fatalf("Save returned error: %v", err)
				}

				loaded, ok := m.Load()
				if !ok {
					t.Fatal("Load reported nothing stored after Save")
				}
				if !reflect.DeepEqual(loaded, tt.events) {
					t.Errorf("Load() = %#v, expected %#v", loaded, tt.events)
				}
			}
		})
	}
}

func TestMirror_SaveNilTimes(t *testing.T) {
	store := NewMemoryStore()
	m := NewMirror(store)

	if err := m.Save([]catalog.Event{{Name: "50 back"}}); err != nil {
		t.Fatal(err)
	}
	data, _, _ := store.Get(EventsKey)
	if string(data) != `[{"name":"50 back","times":[]}]` {
		t.Errorf("stored %s", data)
	}
}

func TestMirror_LoadAbsentOrCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		put   bool
	}{
		{name: "nothing stored"},
		{name: "not json", value: "{{{", put: true},
		{name: "json null", value: "null", put: true},
		{name: "object instead of list", value: `{"name":"50 free"}`, put: true},
		{name: "numeric times", value: `[{"name":"50 free","times":[1,2]}]`, put: true},
		{name: "event without name", value: `[{"times":["1.00.00"]}]`, put: true},
		{name: "empty value", value: "", put: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.put {
				_ = store.Put(EventsKey, []byte(tt.value))
			}

			events, ok := NewMirror(store).Load()
			if ok || events != nil {
				t.Errorf("Load() = (%v, %v), expected (nil, false)", events, ok)
			}
		})
	}
}

func TestMirror_LoadMissingTimes(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put(EventsKey, []byte(`[{"name":"50 free"}]`))

	events, ok := NewMirror(store).Load()
	if !ok {
		t.Fatal("expected events to load")
	}
	if events[0].Times == nil || len(events[0].Times) != 0 {
		t.Errorf("Times = %#v, expected empty list", events[0].Times)
	}
}

func TestMirror_StoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	m := NewMirror(failingStore{err: boom})

	if _, ok := m.Load(); ok {
		t.Error("Load should report absent when the store fails")
	}
	if err := m.Save(catalog.Seed().Events()); !errors.Is(err, boom) {
		t.Errorf("Save error = %v, expected %v", err, boom)
	}
	if _, err := m.Health(); !errors.Is(err, boom) {
		t.Errorf("Health error = %v, expected %v", err, boom)
	}
}

func TestMirror_CustomKey(t *testing.T) {
	store := NewMemoryStore()
	m := &Mirror{Store: store, Key: "club"}

	if err := m.Save([]catalog.Event{{Name: "50 free", Times: []string{}}}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get("club"); !ok {
		t.Error("expected value under custom key")
	}
	if _, ok, _ := store.Get(EventsKey); ok {
		t.Error("value written under default key")
	}
}

func TestMirror_Health(t *testing.T) {
	store := NewMemoryStore()
	m := NewMirror(store)

	health, err := m.Health()
	if err != nil {
		t.Fatal(err)
	}
	if health.Exists || health.Valid {
		t.Errorf("empty store health = %+v", health)
	}

	_ = store.Put(EventsKey, []byte(`[{"name":"50 free","times":["0.30.00","0.29.00"]},{"name":"100 free","times":[]},{"name":"50 free","times":["0.28.00"]}]`))
	health, err = m.Health()
	if err != nil {
		t.Fatal(err)
	}
	if !health.Exists || !health.Valid {
		t.Fatalf("health = %+v, expected valid", health)
	}
	if health.EventCount != 3 || health.TimeCount != 3 {
		t.Errorf("counts = %d events / %d times, expected 3 / 3", health.EventCount, health.TimeCount)
	}
	if !reflect.DeepEqual(health.Duplicates, []string{"50 free"}) {
		t.Errorf("Duplicates = %v", health.Duplicates)
	}

	_ = store.Put(EventsKey, []byte(`not json`))
	health, err = m.Health()
	if err != nil {
		t.Fatal(err)
	}
	if !health.Exists || health.Valid || health.Error == "" {
		t.Errorf("corrupt health = %+v", health)
	}
	if health.Bytes != len("not json") {
		t.Errorf("Bytes = %d", health.Bytes)
	}
}
