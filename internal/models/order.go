package models

import (
	"fmt"
	"math"
	"strings"
)

type OrderPrice struct {
	Price      float64
	StopLoss   float64
	TakeProfit float64
}

// MutableOrderDetails changes only through explicit modify or
// break-even commands.
type MutableOrderDetails struct {
	Prices     OrderPrice
	Lots       float64
	Expiration int64
}

// ImmutableOrderDetails is fixed at creation time.
type ImmutableOrderDetails struct {
	Symbol  string
	Type    OrderType
	Magic   string
	Comment string
}

// Order is the aggregate the terminal reports in its orders snapshot.
// Ticket stays zero until the terminal accepts the order.
type Order struct {
	Mutable   MutableOrderDetails
	Immutable ImmutableOrderDetails
	Ticket    int64
	PnL       float64
}

func (o Order) Symbol() string { return o.Immutable.Symbol }

func (o Order) Type() OrderType { return o.Immutable.Type }

func (o Order) Magic() string { return o.Immutable.Magic }

func (o Order) Comment() string { return o.Immutable.Comment }

func (o Order) Price() float64 { return o.Mutable.Prices.Price }

func (o Order) StopLoss() float64 { return o.Mutable.Prices.StopLoss }

func (o Order) TakeProfit() float64 { return o.Mutable.Prices.TakeProfit }

func (o Order) Lots() float64 { return o.Mutable.Lots }

func (o Order) Expiration() int64 { return o.Mutable.Expiration }

// Equal compares orders by ticket only.
func (o Order) Equal(other Order) bool {
	return o.Ticket == other.Ticket
}

// RiskBenefit is the take-profit distance over the stop-loss distance,
// zero when there is no stop-loss distance.
func (o Order) RiskBenefit() float64 {
	profit := math.Abs(o.TakeProfit() - o.Price())
	risk := math.Abs(o.Price() - o.StopLoss())
	if risk == 0 {
		return 0
	}
	return profit / risk
}

func (o Order) String() string {
	return strings.TrimSpace(fmt.Sprintf(
		"%s %s %s %s", o.Comment(), o.Symbol(), formatFloat(o.Price()), o.Magic()))
}
