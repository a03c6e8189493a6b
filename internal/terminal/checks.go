package terminal

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"mtbot/internal/metrics"
	"mtbot/internal/models"
)

type rawMessage struct {
	Type      string `json:"type"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

// CheckMessages reads the terminal message log and raises one event
// per entry whose id is greater than the highest already seen. Entries
// with an unparsable id or time are skipped; the rest of the batch is
// still processed.
func (c *Client) CheckMessages() {
	raw := map[string]rawMessage{}
	if !tryLoadJSON(c.paths.messages, &raw) {
		return
	}

	c.mu.Lock()
	var fresh []models.Message
	for key, entry := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= c.lastMessageID {
			continue
		}
		when, err := parseBrokerTime(entry.Time, messageTimeLayout, c.cfg.Terminal.BrokerLocation)
		if err != nil {
			continue
		}
		kind := models.MessageKindInfo
		if entry.Type == string(models.MessageKindError) {
			kind = models.MessageKindError
		}
		fresh = append(fresh, models.Message{
			ID:        id,
			Kind:      kind,
			Time:      when,
			Text:      entry.Message,
			ErrorType: entry.ErrorType,
		})
	}
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })
	for _, msg := range fresh {
		if msg.IsError() {
			c.errorMessages = append(c.errorMessages, msg)
		} else {
			c.infoMessages = append(c.infoMessages, msg)
		}
		c.lastMessageID = msg.ID
	}
	c.mu.Unlock()

	for _, msg := range fresh {
		c.emit(Event{Type: EventTypeMessage, Message: &MessageEvent{Message: msg}})
	}
}

// CleanMessages empties the per-kind message logs. The highest seen id
// survives so already-processed entries are not raised again.
func (c *Client) CleanMessages() {
	c.mu.Lock()
	c.infoMessages = nil
	c.errorMessages = nil
	c.mu.Unlock()
}

func (c *Client) InfoMessages() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.infoMessages...)
}

func (c *Client) ErrorMessages() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.errorMessages...)
}

// CheckMarketData polls the quote snapshot and raises one tick event
// per symbol whose bid/ask/tick-value changed.
func (c *Client) CheckMarketData() {
	data := map[string]models.SymbolQuote{}
	if !tryLoadJSON(c.paths.marketData, &data) {
		return
	}

	c.mu.Lock()
	var changed []TickEvent
	for symbol, quote := range data {
		if prev, ok := c.marketData[symbol]; !ok || prev != quote {
			changed = append(changed, TickEvent{Symbol: symbol, Quote: quote})
		}
	}
	c.marketData = data
	c.mu.Unlock()

	sort.Slice(changed, func(i, j int) bool { return changed[i].Symbol < changed[j].Symbol })
	for i := range changed {
		c.emit(Event{Type: EventTypeTick, Tick: &changed[i]})
	}
}

// GetBidAsk returns the cached quote for a symbol, zeros when the
// symbol has not been seen yet.
func (c *Client) GetBidAsk(symbol string) (float64, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	quote, ok := c.marketData[symbol]
	if !ok {
		return 0, 0
	}
	return quote.Bid, quote.Ask
}

// CheckBarData polls the subscribed-bars snapshot and raises one event
// per {symbol, timeframe} whose latest bar changed.
func (c *Client) CheckBarData() {
	data := map[string]models.Bar{}
	if !tryLoadJSON(c.paths.barData, &data) {
		return
	}

	c.mu.Lock()
	var changed []BarDataEvent
	for key, bar := range data {
		if prev, ok := c.barData[key]; !ok || prev != bar {
			symbol, timeframe := splitBarKey(key)
			changed = append(changed, BarDataEvent{Symbol: symbol, Timeframe: timeframe, Bar: bar})
		}
	}
	c.barData = data
	c.mu.Unlock()

	sort.Slice(changed, func(i, j int) bool {
		return changed[i].Symbol+changed[i].Timeframe < changed[j].Symbol+changed[j].Timeframe
	})
	for i := range changed {
		c.emit(Event{Type: EventTypeBarData, Bar: &changed[i]})
	}
}

type rawOrder struct {
	Magic     int64   `json:"magic"`
	Symbol    string  `json:"symbol"`
	Lots      float64 `json:"lots"`
	Type      string  `json:"type"`
	OpenPrice float64 `json:"open_price"`
	OpenTime  string  `json:"open_time"`
	SL        float64 `json:"SL"`
	TP        float64 `json:"TP"`
	PnL       float64 `json:"pnl"`
	Swap      float64 `json:"swap"`
	Comment   string  `json:"comment"`
}

type ordersFile struct {
	Orders      map[string]rawOrder `json:"orders"`
	AccountInfo *models.AccountInfo `json:"account_info"`
}

// CheckOpenOrders polls the orders snapshot, replaces the account info
// wholesale and diffs the order registry by ticket: new tickets and
// tickets whose mutable fields changed raise an order event, absent
// tickets are dropped silently (absence means closed).
func (c *Client) CheckOpenOrders() {
	file := ordersFile{}
	if !tryLoadJSON(c.paths.orders, &file) {
		return
	}

	orders := transformOrders(file.Orders)

	c.mu.Lock()
	if file.AccountInfo != nil {
		c.account = *file.AccountInfo
		c.hasAccount = *file.AccountInfo != (models.AccountInfo{})
	} else {
		c.account = models.AccountInfo{}
		c.hasAccount = false
	}
	account := c.account

	changed := ordersChanged(c.openOrders, orders)
	if changed {
		c.openOrders = orders
	}
	c.mu.Unlock()

	metrics.OpenOrders.Set(float64(len(orders)))
	metrics.Balance.Set(account.Balance)

	if changed {
		c.emit(Event{Type: EventTypeOrders, Orders: &OrdersEvent{
			Account: account,
			Orders:  append([]models.Order(nil), orders...),
		}})
	}
}

// transformOrders turns the raw ticket map into the typed registry
// view, sorted by ticket. Records with an invalid ticket or order type
// are skipped.
func transformOrders(raw map[string]rawOrder) []models.Order {
	orders := make([]models.Order, 0, len(raw))
	for key, entry := range raw {
		ticket, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		orderType, err := models.ParseOrderType(entry.Type)
		if err != nil {
			continue
		}
		orders = append(orders, models.Order{
			Mutable: models.MutableOrderDetails{
				Prices: models.OrderPrice{
					Price:      entry.OpenPrice,
					StopLoss:   entry.SL,
					TakeProfit: entry.TP,
				},
				Lots: entry.Lots,
			},
			Immutable: models.ImmutableOrderDetails{
				Symbol:  entry.Symbol,
				Type:    orderType,
				Magic:   strconv.FormatInt(entry.Magic, 10),
				Comment: entry.Comment,
			},
			Ticket: ticket,
			PnL:    entry.PnL,
		})
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Ticket < orders[j].Ticket })
	return orders
}

func ordersChanged(prev, next []models.Order) bool {
	if len(prev) != len(next) {
		return true
	}
	byTicket := make(map[int64]models.Order, len(prev))
	for _, order := range prev {
		byTicket[order.Ticket] = order
	}
	for _, order := range next {
		old, ok := byTicket[order.Ticket]
		if !ok || old.Mutable != order.Mutable {
			return true
		}
	}
	return false
}

// OpenOrders returns the current registry view.
func (c *Client) OpenOrders() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Order(nil), c.openOrders...)
}

// AccountInfo returns the last reported account state; ok is false
// when the terminal has not reported one yet.
func (c *Client) AccountInfo() (models.AccountInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account, c.hasAccount
}

// GetBalance returns the account balance, -1 when unknown.
func (c *Client) GetBalance() float64 {
	account, ok := c.AccountInfo()
	if !ok {
		return -1
	}
	return account.Balance
}

// CheckHistoricalData reads the per-symbol historical file. The symbol
// is marked successful once its latest bar is within one bar-interval
// of now in broker time; successful symbols are remembered for the
// rest of the run and excluded from the remaining set.
func (c *Client) CheckHistoricalData(symbol string) models.BarSeries {
	data := map[string]map[string]models.HistoricalBar{}
	if !tryLoadJSON(c.paths.historicalData(symbol), &data) {
		return nil
	}

	key := symbol + "_" + c.cfg.Trading.Timeframe
	series := buildSeries(data[key], c.cfg.Terminal.BrokerLocation)
	if len(series) == 0 {
		return nil
	}

	upToDate := c.isHistoricalDataUpToDate(series)

	c.mu.Lock()
	changed := !series.Equal(c.historicalData[key])
	if changed {
		c.historicalData[key] = series
	}
	if upToDate {
		c.successfulSymbols[symbol] = true
	}
	c.mu.Unlock()

	if changed {
		c.emit(Event{Type: EventTypeHistoricalData, HistoricalData: &HistoricalDataEvent{
			Symbol: symbol,
			Series: series,
		}})
	}
	return series
}

func (c *Client) checkRemainingHistoricalData() {
	for _, symbol := range c.RemainingSymbols() {
		c.CheckHistoricalData(symbol)
	}
}

// isHistoricalDataUpToDate tolerates a late or incomplete final bar by
// a one-interval grace window.
func (c *Client) isHistoricalDataUpToDate(series models.BarSeries) bool {
	latest, ok := series.Latest()
	if !ok {
		return false
	}
	interval, err := models.TimeframeInterval(c.cfg.Trading.Timeframe)
	if err != nil {
		return false
	}
	return time.Now().UTC().Sub(latest.Time) < interval
}

// RemainingSymbols lists the configured symbols that have not produced
// up-to-date historical data yet this run.
func (c *Client) RemainingSymbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var remaining []string
	for _, symbol := range c.cfg.Trading.Symbols {
		if !c.successfulSymbols[symbol] {
			remaining = append(remaining, symbol)
		}
	}
	return remaining
}

// CheckHistoricalTrades polls the deal history snapshot, keyed by
// trade ticket, and raises one event when anything changed.
func (c *Client) CheckHistoricalTrades() {
	data := map[string]models.HistoricalTrade{}
	if !tryLoadJSON(c.paths.historicalTrades, &data) {
		return
	}

	c.mu.Lock()
	changed := len(data) != len(c.historicalTrades)
	if !changed {
		for ticket, trade := range data {
			if prev, ok := c.historicalTrades[ticket]; !ok || prev != trade {
				changed = true
				break
			}
		}
	}
	if changed {
		c.historicalTrades = data
	}
	c.mu.Unlock()

	if changed {
		trades := make(map[string]models.HistoricalTrade, len(data))
		for ticket, trade := range data {
			trades[ticket] = trade
		}
		c.emit(Event{Type: EventTypeHistoricalTrades, HistoricalTrades: &HistoricalTradesEvent{Trades: trades}})
	}
}

// CleanAllHistoricalFiles removes every per-symbol historical file.
func (c *Client) CleanAllHistoricalFiles() {
	matches := historicalFiles(c.paths.historicalDataPrefix)
	for _, path := range matches {
		tryRemoveFile(path)
	}
}

func splitBarKey(key string) (string, string) {
	idx := strings.LastIndex(key, "_")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}

func buildSeries(raw map[string]models.HistoricalBar, loc *time.Location) models.BarSeries {
	series := make(models.BarSeries, 0, len(raw))
	for value, bar := range raw {
		when, err := parseBrokerTime(value, barTimeLayout, loc)
		if err != nil {
			continue
		}
		series = append(series, models.TimedBar{Time: when, HistoricalBar: bar})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	return series
}
