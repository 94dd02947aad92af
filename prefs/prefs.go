// Package prefs persists viewer preferences between runs.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage location inside the gdata store.
const (
	prefsObject   = "prefs"
	prefsProperty = "viewer"
)

// Prefs holds the settings restored at startup.
type Prefs struct {
	ZoomIndex int  `yaml:"zoom_index"`
	Footsteps bool `yaml:"footsteps"`
}

// Store loads and saves Prefs. With no gdata manager it keeps them in memory only.
type Store struct {
	manager *gdata.Manager
	mem     []byte
}

// Open creates a store backed by gdata under appName. If the platform store
// cannot be opened, the returned store falls back to memory and err reports why.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{}, fmt.Errorf("open prefs store: %w", err)
	}
	return &Store{manager: m}, nil
}

// NewStore wraps an existing manager. A nil manager gives an in-memory store.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Persistent reports whether saves outlive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load returns the saved prefs. ok is false when nothing was saved yet.
func (s *Store) Load() (p Prefs, ok bool, err error) {
	data, ok, err := s.read()
	if err != nil || !ok {
		return Prefs{}, false, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, false, fmt.Errorf("unmarshal prefs: %w", err)
	}
	return p, true, nil
}

// Save writes p to the store.
func (s *Store) Save(p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if s.manager == nil {
		s.mem = data
		return nil
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func (s *Store) read() ([]byte, bool, error) {
	if s.manager == nil {
		return s.mem, s.mem != nil, nil
	}
	if !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil, false, nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return nil, false, fmt.Errorf("load prefs: %w", err)
	}
	return data, true, nil
}
