package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSave_WritesIndentedSeries(t *testing.T) {
	s := NewStore(t.TempDir())
	series := json.RawMessage(`{"2026-08-28":{"4. close":"647.24"},"2026-08-27":{"4. close":"645.10"}}`)

	path, err := s.Save("SPY", series)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "SPY.json" {
		t.Errorf("expected SPY.json, got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if err := json.Unmarshal(series, &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("persisted content differs from series:\ngot  %v\nwant %v", got, want)
	}
	if !strings.Contains(string(data), "\n    \"") {
		t.Error("expected 4-space indentation in written file")
	}
}

func TestSave_SymbolWithDot(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	path, err := s.Save("EXS1.DE", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(dir, "EXS1.DE.json")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestSave_OverwritesPreviousRun(t *testing.T) {
	s := NewStore(t.TempDir())

	if _, err := s.Save("QQQ", json.RawMessage(`{"old":"data"}`)); err != nil {
		t.Fatal(err)
	}
	path, err := s.Save("QQQ", json.RawMessage(`{"new":"data"}`))
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "old") {
		t.Error("expected previous content to be fully replaced")
	}
	if !strings.Contains(string(data), "new") {
		t.Error("expected new content in file")
	}
}

func TestSave_InvalidSeries(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Save("SPY", json.RawMessage(`{broken`)); err == nil {
		t.Fatal("expected error for invalid series payload")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "stock")
	s := NewStore(dir)
	if err := s.EnsureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
	// Idempotent on an existing directory.
	if err := s.EnsureDir(); err != nil {
		t.Errorf("second ensure dir: %v", err)
	}
}

func TestEnsureDir_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(filepath.Join(blocker, "sub"))
	if err := s.EnsureDir(); err == nil {
		t.Fatal("expected error when a file blocks the directory path")
	}
}
