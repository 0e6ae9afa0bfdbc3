// Package storage persists the event catalog.
//
// The whole catalog is serialized as one JSON array under a single key of a
// Store and rewritten after every change:
//
//	[{"name": "50 free", "times": ["1.00.00"]}, ...]
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/xolan/swimlog/internal/catalog"
)

// EventsKey is the store key holding the serialized catalog.
const EventsKey = "events"

// Mirror writes catalog snapshots to a Store and reads them back.
type Mirror struct {
	Store Store
	Key   string
}

// NewMirror returns a Mirror over store using EventsKey.
func NewMirror(store Store) *Mirror {
	return &Mirror{Store: store, Key: EventsKey}
}

// StoreKey returns the key the catalog is stored under.
func (m *Mirror) StoreKey() string {
	if m.Key == "" {
		return EventsKey
	}
	return m.Key
}

// Load returns the persisted events. ok is false when nothing usable is
// stored: the key is missing, the read fails, or the blob does not parse.
func (m *Mirror) Load() (events []catalog.Event, ok bool) {
	data, found, err := m.Store.Get(m.StoreKey())
	if err != nil || !found {
		return nil, false
	}

	events, err = decodeEvents(data)
	if err != nil {
		return nil, false
	}
	return events, true
}

// Save writes the full snapshot, replacing any previous value.
func (m *Mirror) Save(events []catalog.Event) error {
	data, err := encodeEvents(events)
	if err != nil {
		return err
	}
	if err := m.Store.Put(m.StoreKey(), data); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

// Health describes the stored blob.
type Health struct {
	Exists     bool   // A value is stored under the key
	Valid      bool   // The value parses as a catalog
	Error      string // Parse error when Valid is false
	Bytes      int    // Size of the stored value
	EventCount int
	TimeCount  int
	Duplicates []string // Event names that appear more than once
}

// Health inspects the stored value without changing it.
func (m *Mirror) Health() (Health, error) {
	var health Health

	data, found, err := m.Store.Get(m.StoreKey())
	if err != nil {
		return health, err
	}
	if !found {
		return health, nil
	}

	health.Exists = true
	health.Bytes = len(data)

	events, err := decodeEvents(data)
	if err != nil {
		health.Error = err.Error()
		return health, nil
	}

	health.Valid = true
	health.EventCount = len(events)
	seen := make(map[string]int)
	for _, e := range events {
		health.TimeCount += len(e.Times)
		seen[e.Name]++
		if seen[e.Name] == 2 {
			health.Duplicates = append(health.Duplicates, e.Name)
		}
	}
	return health, nil
}

func encodeEvents(events []catalog.Event) ([]byte, error) {
	out := make([]catalog.Event, len(events))
	for i, e := range events {
		times := e.Times
		if times == nil {
			times = []string{}
		}
		out[i] = catalog.Event{Name: e.Name, Times: times}
	}
	return json.Marshal(out)
}

func decodeEvents(data []byte) ([]catalog.Event, error) {
	var events []catalog.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	if events == nil {
		return nil, fmt.Errorf("stored value is not an event list")
	}
	for i, e := range events {
		if e.Name == "" {
			return nil, fmt.Errorf("event %d has no name", i)
		}
		if e.Times == nil {
			events[i].Times = []string{}
		}
	}
	return events, nil
}
