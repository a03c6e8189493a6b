package terminal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mtbot/internal/config"
	"mtbot/internal/logger"
)

func newTestClient(t *testing.T, symbols ...string) *Client {
	t.Helper()
	if len(symbols) == 0 {
		symbols = []string{"EURUSD"}
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "AgentFiles"), 0o755); err != nil {
		t.Fatalf("failed to create agent dir: %v", err)
	}

	cfg := &config.Config{
		Terminal: config.TerminalConfig{
			FilesPath:      dir,
			Prefix:         "AgentFiles",
			BrokerLocation: time.FixedZone("broker", 3*3600),
		},
		Trading: config.TradingConfig{
			Symbols:      symbols,
			Timeframe:    "M5",
			LookbackDays: 10,
			RiskRatio:    1,
		},
	}
	return New(cfg, nil, logger.New(logger.Config{Level: "error"}))
}

func writeSnapshot(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// drainEvents empties the event channel without running the dispatcher.
func drainEvents(c *Client) []Event {
	var events []Event
	for {
		select {
		case ev := <-c.events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestClient_StartStop(t *testing.T) {
	c := newTestClient(t)
	c.cfg.Poll = config.PollConfig{
		Messages:         10 * time.Millisecond,
		MarketData:       10 * time.Millisecond,
		BarData:          10 * time.Millisecond,
		Orders:           10 * time.Millisecond,
		HistoricalData:   10 * time.Millisecond,
		HistoricalTrades: 10 * time.Millisecond,
	}

	writeSnapshot(t, c.paths.marketData, `{"EURUSD":{"bid":1.1,"ask":1.2,"tick_value":1}}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	c.Stop()

	bid, ask := c.GetBidAsk("EURUSD")
	if bid != 1.1 || ask != 1.2 {
		t.Errorf("GetBidAsk() = %v, %v after polling", bid, ask)
	}
}
