package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != Default() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested"))
	want := State{ShowStatus: false, ShowHidden: true, FilesDir: t.TempDir()}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if got != Default() {
		t.Errorf("corrupt load = %+v, want defaults", got)
	}
}

func TestStoreDropsVanishedFilesDir(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "docs")
	if err := os.Mkdir(docs, 0755); err != nil {
		t.Fatal(err)
	}
	s := NewStore(t.TempDir())
	if err := s.Save(State{ShowStatus: true, FilesDir: docs}); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(docs); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(filepath.Dir(s.Path())).Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.FilesDir != "" || !got.ShowStatus {
		t.Errorf("Load() = %+v, want FilesDir cleared", got)
	}
}

func TestStoreSkipsUnchangedSave(t *testing.T) {
	s := NewStore(t.TempDir())
	state := State{ShowStatus: true, ShowHidden: true}
	if err := s.Save(state); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(s.Path()); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(state); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("unchanged save wrote the file (stat err = %v)", err)
	}

	state.ShowHidden = false
	if err := s.Save(state); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("changed save did not write: %v", err)
	}
}
