package terminal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestWriter(t *testing.T) *commandWriter {
	t.Helper()
	return newCommandWriter(filepath.Join(t.TempDir(), "Commands_"))
}

func TestCommandWriter_Send(t *testing.T) {
	w := newTestWriter(t)

	id, err := w.send(cmdSubscribeSymbols, "EURUSD,USDJPY")
	if err != nil {
		t.Fatalf("send() error = %v", err)
	}
	if id != 0 {
		t.Errorf("first id = %d, want 0", id)
	}

	raw, err := os.ReadFile(w.file(0))
	if err != nil {
		t.Fatalf("command file not written: %v", err)
	}
	want := "<:0|SUBSCRIBE_SYMBOLS|EURUSD,USDJPY:>"
	if string(raw) != want {
		t.Errorf("command file = %q, want %q", raw, want)
	}

	if id, _ := w.send(cmdCloseAllOrders, ""); id != 1 {
		t.Errorf("second id = %d, want 1", id)
	}
}

func TestCommandWriter_ConcurrentIDs(t *testing.T) {
	w := newTestWriter(t)
	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := w.send(cmdCloseOrder, "1"); err != nil {
				t.Errorf("send() error = %v", err)
			}
		}()
	}
	wg.Wait()

	// Every id in [0, n) must map to exactly one file with a matching
	// embedded id.
	for id := 0; id < n; id++ {
		raw, err := os.ReadFile(w.file(id))
		if err != nil {
			t.Fatalf("missing command file for id %d: %v", id, err)
		}
		prefix := fmt.Sprintf("<:%d|", id)
		if len(raw) < len(prefix) || string(raw[:len(prefix)]) != prefix {
			t.Errorf("file %d content = %q, want prefix %q", id, raw, prefix)
		}
	}
	if got := len(w.list()); got != n {
		t.Errorf("list() len = %d, want %d", got, n)
	}
}

func TestCommandWriter_FileExistsAndCleanAll(t *testing.T) {
	w := newTestWriter(t)
	w.send(cmdGetHistoricalData, "EURUSD,M5,1710000000")

	if !w.fileExists("EURUSD") {
		t.Errorf("fileExists(EURUSD) = false, want true")
	}
	if w.fileExists("USDJPY") {
		t.Errorf("fileExists(USDJPY) = true, want false")
	}

	w.cleanAll()
	if got := len(w.list()); got != 0 {
		t.Errorf("list() len = %d after cleanAll", got)
	}
}
