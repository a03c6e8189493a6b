package terminal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"mtbot/internal/metrics"
)

// Command types the terminal agent understands.
const (
	cmdOpenOrder            = "OPEN_ORDER"
	cmdModifyOrder          = "MODIFY_ORDER"
	cmdCloseOrder           = "CLOSE_ORDER"
	cmdCloseAllOrders       = "CLOSE_ALL_ORDERS"
	cmdCloseOrdersBySymbol  = "CLOSE_ORDERS_BY_SYMBOL"
	cmdCloseOrdersByMagic   = "CLOSE_ORDERS_BY_MAGIC"
	cmdSubscribeSymbols     = "SUBSCRIBE_SYMBOLS"
	cmdSubscribeSymbolsBars = "SUBSCRIBE_SYMBOLS_BAR_DATA"
	cmdGetHistoricalData    = "GET_HISTORICAL_DATA"
	cmdGetHistoricalTrades  = "GET_HISTORICAL_TRADES"
)

// commandWriter serializes outbound commands into numbered files the
// terminal consumes asynchronously. The counter starts at 0 for every
// client instance and is not recovered from files left by a previous
// run, so a restart renumbers from 0 and may overwrite unread files at
// the same prefix. Commands are never retried.
type commandWriter struct {
	mu     sync.Mutex
	nextID int
	prefix string
}

func newCommandWriter(prefix string) *commandWriter {
	return &commandWriter{prefix: prefix}
}

// send renders `<:{id}|{TYPE}|{payload}:>` into `{prefix}{id}.txt`.
// Counter increment and file write form one critical section so that
// concurrent callers never share an id.
func (w *commandWriter) send(commandType, payload string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	content := fmt.Sprintf("<:%d|%s|%s:>", id, commandType, payload)
	if err := writeFile(w.file(id), content); err != nil {
		return 0, fmt.Errorf("не удалось записать файл команды %d: %w", id, err)
	}
	w.nextID++
	metrics.Commands.WithLabelValues(commandType).Inc()
	return id, nil
}

// fileExists scans the contents of existing command files for a
// payload referencing the symbol. Used to avoid re-requesting
// historical data that is already in flight.
func (w *commandWriter) fileExists(symbol string) bool {
	for _, path := range w.list() {
		if strings.Contains(tryReadFile(path), symbol) {
			return true
		}
	}
	return false
}

// cleanAll deletes every command file at the prefix.
func (w *commandWriter) cleanAll() {
	for _, path := range w.list() {
		tryRemoveFile(path)
	}
}

func (w *commandWriter) list() []string {
	matches, err := filepath.Glob(w.prefix + "*.txt")
	if err != nil {
		return nil
	}
	return matches
}

func (w *commandWriter) file(id int) string {
	return w.prefix + strconv.Itoa(id) + ".txt"
}
