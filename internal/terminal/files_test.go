package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTryLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	var out map[string]int
	writeSnapshot(t, path, `{"a": 1}`)
	if !tryLoadJSON(path, &out) {
		t.Fatalf("tryLoadJSON() = false for valid file")
	}
	if out["a"] != 1 {
		t.Errorf("loaded = %v", out)
	}

	writeSnapshot(t, path, `{"a":`)
	if tryLoadJSON(path, &out) {
		t.Errorf("tryLoadJSON() = true for truncated file")
	}

	if tryLoadJSON(filepath.Join(dir, "missing.json"), &out) {
		t.Errorf("tryLoadJSON() = true for missing file")
	}
}

func TestTryRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")

	if !tryRemoveFile(path) {
		t.Errorf("tryRemoveFile() = false for a missing file")
	}

	writeSnapshot(t, path, "x")
	if !tryRemoveFile(path) {
		t.Errorf("tryRemoveFile() = false for an existing file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file survived removal")
	}
}

func TestHistoricalFiles(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "Historical_Data_")
	writeSnapshot(t, prefix+"EURUSD.json", "{}")
	writeSnapshot(t, prefix+"USDJPY.json", "{}")
	writeSnapshot(t, filepath.Join(dir, "Orders.json"), "{}")

	if got := len(historicalFiles(prefix)); got != 2 {
		t.Errorf("historicalFiles() len = %d, want 2", got)
	}
}
