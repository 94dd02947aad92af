package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("gridwalk_prefs_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestMemoryStore(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Error("nil manager store should not be persistent")
	}

	if _, ok, err := s.Load(); ok || err != nil {
		t.Fatalf("empty store Load = (%v, %v), want (false, nil)", ok, err)
	}

	want := Prefs{ZoomIndex: 2, Footsteps: true}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load after Save = (%v, %v)", ok, err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestGdataStore(t *testing.T) {
	m := openTestManager(t)
	if m == nil {
		t.Skip("gdata store unavailable on this platform")
	}
	s := NewStore(m)

	if err := s.Save(Prefs{ZoomIndex: 3}); err != nil {
		t.Fatal(err)
	}

	// A second store over the same manager sees the saved value.
	got, ok, err := NewStore(m).Load()
	if err != nil || !ok {
		t.Fatalf("Load = (%v, %v)", ok, err)
	}
	if got.ZoomIndex != 3 {
		t.Errorf("ZoomIndex = %d, want 3", got.ZoomIndex)
	}
}
