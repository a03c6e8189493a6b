package models

import "fmt"

type OrderType string

const (
	OrderTypeBuy       OrderType = "buy"
	OrderTypeSell      OrderType = "sell"
	OrderTypeBuyLimit  OrderType = "buylimit"
	OrderTypeSellLimit OrderType = "selllimit"
	OrderTypeBuyStop   OrderType = "buystop"
	OrderTypeSellStop  OrderType = "sellstop"
)

// ParseOrderType validates the wire value coming from the terminal.
func ParseOrderType(value string) (OrderType, error) {
	switch OrderType(value) {
	case OrderTypeBuy, OrderTypeSell,
		OrderTypeBuyLimit, OrderTypeSellLimit,
		OrderTypeBuyStop, OrderTypeSellStop:
		return OrderType(value), nil
	}
	return "", fmt.Errorf("неизвестный тип ордера: %q", value)
}

// MarketOrderType returns the market variant for the given direction.
func MarketOrderType(buy bool) OrderType {
	if buy {
		return OrderTypeBuy
	}
	return OrderTypeSell
}

// PendingOrderType returns the limit variant for the given direction.
// Limit orders may be corrected to stop orders against the current
// bid/ask right before the open command is written.
func PendingOrderType(buy bool) OrderType {
	if buy {
		return OrderTypeBuyLimit
	}
	return OrderTypeSellLimit
}

func (t OrderType) IsBuy() bool {
	return t == OrderTypeBuy || t == OrderTypeBuyLimit || t == OrderTypeBuyStop
}

func (t OrderType) IsSell() bool {
	return t == OrderTypeSell || t == OrderTypeSellLimit || t == OrderTypeSellStop
}

func (t OrderType) IsMarket() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

func (t OrderType) IsPending() bool {
	return !t.IsMarket()
}

func (t OrderType) String() string {
	return string(t)
}
