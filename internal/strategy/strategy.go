package strategy

import (
	"time"

	"mtbot/internal/models"
)

// Trader is the slice of the terminal client the decision logic needs.
type Trader interface {
	GetBidAsk(symbol string) (float64, float64)
	OpenOrders() []models.Order
	CloseOrdersByMagic(magic string) error
	PlaceBreakEven(order models.Order) error
}

// Strategy turns a historical bar series into an optional order
// intent. Concrete strategies live outside this module.
type Strategy interface {
	Indicator(series models.BarSeries, symbol string, now time.Time) (models.Order, bool)
}

// CheckOrderViability gates a fresh intent: no open order on the same
// symbol, enough reward for the risk, and not inside the high-spread
// hours around the daily rollover.
func CheckOrderViability(t Trader, order models.Order, minRiskBenefit float64, now time.Time) bool {
	for _, open := range t.OpenOrders() {
		if open.Symbol() == order.Symbol() {
			return false
		}
	}
	if order.RiskBenefit() <= minRiskBenefit {
		return false
	}
	hour := now.UTC().Hour()
	if hour == 22 || hour == 23 || hour == 0 {
		return false
	}
	return true
}
