package terminal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"mtbot/internal/models"
)

// SubscribeSymbols asks the terminal to start writing quotes for the
// given symbols.
func (c *Client) SubscribeSymbols(symbols []string) error {
	_, err := c.commands.send(cmdSubscribeSymbols, strings.Join(symbols, ","))
	return err
}

// SubscribeSymbolsBarData asks the terminal to start writing the
// latest bar for every {symbol, timeframe} pair.
func (c *Client) SubscribeSymbolsBarData(pairs [][2]string) error {
	parts := make([]string, 0, len(pairs)*2)
	for _, pair := range pairs {
		parts = append(parts, pair[0], pair[1])
	}
	_, err := c.commands.send(cmdSubscribeSymbolsBars, strings.Join(parts, ","))
	return err
}

// RequestHistoricalData asks for bars since the configured lookback
// window. The answer arrives later through the per-symbol file.
func (c *Client) RequestHistoricalData(symbol, timeframe string) error {
	from := time.Now().UTC().Add(-c.lookback())
	payload := fmt.Sprintf("%s,%s,%d", symbol, timeframe, from.Unix())
	_, err := c.commands.send(cmdGetHistoricalData, payload)
	return err
}

// RequestHistoricalTrades asks for the deal history since the
// configured lookback window.
func (c *Client) RequestHistoricalTrades() error {
	from := time.Now().UTC().Add(-c.lookback())
	_, err := c.commands.send(cmdGetHistoricalTrades, strconv.FormatInt(from.Unix(), 10))
	return err
}

// CreateNewOrder writes an open-order command. A pending limit order
// whose price already crossed the current bid/ask is corrected to the
// matching stop variant first.
func (c *Client) CreateNewOrder(order models.Order) error {
	orderType := order.Type()
	if orderType.IsPending() {
		bid, ask := c.GetBidAsk(order.Symbol())
		orderType = correctPendingType(orderType, order.Price(), bid, ask)
	}

	payload := strings.Join([]string{
		order.Symbol(),
		orderType.String(),
		formatFloat(order.Lots()),
		formatFloat(order.Price()),
		formatFloat(order.StopLoss()),
		formatFloat(order.TakeProfit()),
		order.Magic(),
		order.Comment(),
		strconv.FormatInt(order.Expiration(), 10),
	}, ",")
	if _, err := c.commands.send(cmdOpenOrder, payload); err != nil {
		return err
	}

	c.logEntry().WithField("symbol", order.Symbol()).WithField("magic", order.Magic()).
		Info("Команда открытия ордера записана.")
	return nil
}

// ModifyOrder rewrites the mutable price triple of an accepted order.
func (c *Client) ModifyOrder(ticket int64, prices models.OrderPrice) error {
	payload := strings.Join([]string{
		strconv.FormatInt(ticket, 10),
		formatFloat(prices.Price),
		formatFloat(prices.StopLoss),
		formatFloat(prices.TakeProfit),
	}, ",")
	_, err := c.commands.send(cmdModifyOrder, payload)
	return err
}

// PlaceBreakEven moves the stop-loss to the entry price.
func (c *Client) PlaceBreakEven(order models.Order) error {
	prices := order.Mutable.Prices
	prices.StopLoss = order.Price()
	if err := c.ModifyOrder(order.Ticket, prices); err != nil {
		return err
	}
	c.log.WithMagic(order.Magic()).Debug("Брейк-ивен выставлен.")
	return nil
}

func (c *Client) CloseOrder(ticket int64) error {
	_, err := c.commands.send(cmdCloseOrder, strconv.FormatInt(ticket, 10))
	return err
}

func (c *Client) CloseAllOrders() error {
	_, err := c.commands.send(cmdCloseAllOrders, "")
	return err
}

func (c *Client) CloseOrdersBySymbol(symbol string) error {
	_, err := c.commands.send(cmdCloseOrdersBySymbol, symbol)
	return err
}

func (c *Client) CloseOrdersByMagic(magic string) error {
	_, err := c.commands.send(cmdCloseOrdersByMagic, magic)
	return err
}

// CommandFileExists reports whether an unconsumed command file already
// references the symbol.
func (c *Client) CommandFileExists(symbol string) bool {
	return c.commands.fileExists(symbol)
}

// CleanAllCommandFiles deletes every pending command file.
func (c *Client) CleanAllCommandFiles() {
	c.commands.cleanAll()
}

// PendingCommandFiles counts command files the terminal has not
// consumed yet.
func (c *Client) PendingCommandFiles() int {
	return len(c.commands.list())
}

// GetLotSize sizes an order so that hitting the stop-loss costs one
// percent of the balance per risk unit. Result is rounded up to the
// 0.01 lot step.
func (c *Client) GetLotSize(order models.Order, riskRatio float64) float64 {
	balance := c.GetBalance()
	if balance <= 0 {
		return 0.01
	}

	bid, ask := c.GetBidAsk(order.Symbol())
	price := (bid + ask) / 2
	if price == 0 {
		price = order.Price()
	}

	pip := models.PipSize(order.Symbol())
	slPips := math.Abs(price-order.StopLoss()) / pip
	if slPips == 0 {
		return 0.01
	}

	lots := balance * 0.01 * riskRatio / (slPips * 10)
	lots = math.Ceil(lots*100) / 100
	if lots < 0.01 {
		lots = 0.01
	}
	return lots
}

// correctPendingType flips a crossed limit order to its stop variant.
func correctPendingType(orderType models.OrderType, price, bid, ask float64) models.OrderType {
	switch {
	case orderType == models.OrderTypeBuyLimit && price >= ask && ask > 0:
		return models.OrderTypeBuyStop
	case orderType == models.OrderTypeSellLimit && price <= bid && bid > 0:
		return models.OrderTypeSellStop
	}
	return orderType
}

func (c *Client) lookback() time.Duration {
	return time.Duration(c.cfg.Trading.LookbackDays * 24 * float64(time.Hour))
}

func formatFloat(val float64) string {
	formatted := strconv.FormatFloat(val, 'f', 12, 64)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")
	if formatted == "" || formatted == "-0" {
		return "0"
	}
	return formatted
}
