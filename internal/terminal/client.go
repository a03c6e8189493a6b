package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mtbot/internal/config"
	"mtbot/internal/logger"
	"mtbot/internal/metrics"
	"mtbot/internal/models"
)

// Client is the file-based bridge to the trading terminal: it polls
// the snapshot files the terminal rewrites, raises events on change
// and writes numbered command files the terminal consumes.
type Client struct {
	cfg     *config.Config
	log     *logger.Logger
	handler EventHandler

	paths    agentPaths
	commands *commandWriter

	events chan Event
	stopCh chan struct{}
	wg     sync.WaitGroup

	// Each cache belongs to its own poll worker; mu is only for
	// external readers (GetBidAsk, OpenOrders, ...).
	mu                sync.RWMutex
	infoMessages      []models.Message
	errorMessages     []models.Message
	lastMessageID     int64
	marketData        map[string]models.SymbolQuote
	barData           map[string]models.Bar
	openOrders        []models.Order
	account           models.AccountInfo
	hasAccount        bool
	historicalData    map[string]models.BarSeries
	historicalTrades  map[string]models.HistoricalTrade
	successfulSymbols map[string]bool
}

func New(cfg *config.Config, handler EventHandler, log *logger.Logger) *Client {
	if handler == nil {
		handler = BaseEventHandler{}
	}
	paths := newAgentPaths(cfg.Terminal.FilesPath, cfg.Terminal.Prefix)
	return &Client{
		cfg:               cfg,
		log:               log,
		handler:           handler,
		paths:             paths,
		commands:          newCommandWriter(paths.commandsPrefix),
		events:            make(chan Event, 128),
		stopCh:            make(chan struct{}),
		marketData:        map[string]models.SymbolQuote{},
		barData:           map[string]models.Bar{},
		historicalData:    map[string]models.BarSeries{},
		historicalTrades:  map[string]models.HistoricalTrade{},
		successfulSymbols: map[string]bool{},
	}
}

// Start launches one poll worker per resource and a single dispatcher
// that delivers events to the handler. A slow or failing resource
// never stalls the others.
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.dispatchLoop(ctx)

	c.startWorker(ctx, "messages", c.cfg.Poll.Messages, c.CheckMessages)
	c.startWorker(ctx, "market_data", c.cfg.Poll.MarketData, c.CheckMarketData)
	c.startWorker(ctx, "bar_data", c.cfg.Poll.BarData, c.CheckBarData)
	c.startWorker(ctx, "orders", c.cfg.Poll.Orders, c.CheckOpenOrders)
	c.startWorker(ctx, "historical_data", c.cfg.Poll.HistoricalData, c.checkRemainingHistoricalData)
	c.startWorker(ctx, "historical_trades", c.cfg.Poll.HistoricalTrades, c.CheckHistoricalTrades)

	c.logEntry().Info("Клиент терминала запущен.")
}

// Stop asks every worker to finish its current iteration and waits.
func (c *Client) Stop() {
	close(c.stopCh)
	c.wg.Wait()
	c.logEntry().Info("Клиент терминала остановлен.")
}

func (c *Client) startWorker(ctx context.Context, resource string, interval time.Duration, check func()) {
	if interval <= 0 {
		interval = time.Second
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stopCh:
				return
			case <-ticker.C:
				check()
				metrics.PollCycles.WithLabelValues(resource).Inc()
			}
		}
	}()
}

func (c *Client) dispatchLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case ev := <-c.events:
			c.dispatch(ev)
		}
	}
}

func (c *Client) dispatch(ev Event) {
	metrics.Events.WithLabelValues(string(ev.Type)).Inc()
	switch ev.Type {
	case EventTypeTick:
		c.handler.OnTick(c, ev.Tick.Symbol, ev.Tick.Quote.Bid, ev.Tick.Quote.Ask)
	case EventTypeBarData:
		c.handler.OnBarData(c, ev.Bar.Symbol, ev.Bar.Timeframe, ev.Bar.Bar)
	case EventTypeHistoricalData:
		c.handler.OnHistoricalData(c, ev.HistoricalData.Symbol, ev.HistoricalData.Series)
	case EventTypeHistoricalTrades:
		c.handler.OnHistoricalTrades(c, ev.HistoricalTrades.Trades)
	case EventTypeMessage:
		c.handler.OnMessage(c, ev.Message.Message)
	case EventTypeOrders:
		c.handler.OnOrderEvent(c, ev.Orders.Account, ev.Orders.Orders)
	}
}

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	case <-c.stopCh:
	}
}

func (c *Client) logEntry() *logrus.Entry {
	return c.log.WithComponent("terminal")
}
