package terminal

import "mtbot/internal/models"

type EventType string

const (
	EventTypeTick             EventType = "Tick"
	EventTypeBarData          EventType = "BarData"
	EventTypeHistoricalData   EventType = "HistoricalData"
	EventTypeHistoricalTrades EventType = "HistoricalTrades"
	EventTypeMessage          EventType = "Message"
	EventTypeOrders           EventType = "Orders"
)

type TickEvent struct {
	Symbol string
	Quote  models.SymbolQuote
}

type BarDataEvent struct {
	Symbol    string
	Timeframe string
	Bar       models.Bar
}

type HistoricalDataEvent struct {
	Symbol string
	Series models.BarSeries
}

type HistoricalTradesEvent struct {
	Trades map[string]models.HistoricalTrade
}

type MessageEvent struct {
	Message models.Message
}

type OrdersEvent struct {
	Account models.AccountInfo
	Orders  []models.Order
}

type Event struct {
	Type             EventType
	Tick             *TickEvent
	Bar              *BarDataEvent
	HistoricalData   *HistoricalDataEvent
	HistoricalTrades *HistoricalTradesEvent
	Message          *MessageEvent
	Orders           *OrdersEvent
}

// EventHandler receives the domain events raised by the snapshot
// poller. Embed BaseEventHandler to implement only a subset.
type EventHandler interface {
	OnTick(c *Client, symbol string, bid, ask float64)
	OnBarData(c *Client, symbol, timeframe string, bar models.Bar)
	OnHistoricalData(c *Client, symbol string, series models.BarSeries)
	OnHistoricalTrades(c *Client, trades map[string]models.HistoricalTrade)
	OnMessage(c *Client, message models.Message)
	OnOrderEvent(c *Client, account models.AccountInfo, orders []models.Order)
}

// BaseEventHandler ignores every event.
type BaseEventHandler struct{}

func (BaseEventHandler) OnTick(*Client, string, float64, float64) {}

func (BaseEventHandler) OnBarData(*Client, string, string, models.Bar) {}

func (BaseEventHandler) OnHistoricalData(*Client, string, models.BarSeries) {}

func (BaseEventHandler) OnHistoricalTrades(*Client, map[string]models.HistoricalTrade) {}

func (BaseEventHandler) OnMessage(*Client, models.Message) {}

func (BaseEventHandler) OnOrderEvent(*Client, models.AccountInfo, []models.Order) {}
