package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`theme = "nord"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan Config, 4)
	w, err := NewWatcher(path, Default(), func(c Config) { changed <- c }, func(err error) { t.Log(err) })
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("theme = \"gruvbox\"\ntab_min_width = 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changed:
		if c.Theme != "gruvbox" || c.TabMinWidth != 9 {
			t.Errorf("reloaded theme=%q tab_min_width=%d", c.Theme, c.TabMinWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}
