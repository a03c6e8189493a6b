package terminal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"mtbot/internal/metrics"
)

const (
	readAttempts = 5
	readBackoff  = 100 * time.Millisecond
)

// tryLoadJSON reads a terminal-written snapshot file, tolerating the
// writer being mid-rewrite: a missing, locked or half-written file is
// retried a bounded number of times and then reported as not loaded.
// It never fails the caller.
func tryLoadJSON(path string, v any) bool {
	for i := 0; i < readAttempts; i++ {
		raw, err := os.ReadFile(path)
		if err == nil {
			if json.Unmarshal(raw, v) == nil {
				return true
			}
		}
		metrics.ReadRetries.Inc()
		time.Sleep(readBackoff)
	}
	return false
}

func tryReadFile(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(raw)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func historicalFiles(prefix string) []string {
	matches, err := filepath.Glob(prefix + "*.json")
	if err != nil {
		return nil
	}
	return matches
}

// tryRemoveFile retries removal of a file the terminal may still hold
// open. Returns false when the file survived every attempt.
func tryRemoveFile(path string) bool {
	for i := 0; i < readAttempts; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return true
		}
		if os.Remove(path) == nil {
			return true
		}
		time.Sleep(readBackoff)
	}
	return false
}
