package strategy

import (
	"time"

	"github.com/sirupsen/logrus"

	"mtbot/internal/config"
	"mtbot/internal/logger"
	"mtbot/internal/models"
)

// Policy holds the stateless order lifecycle rules. The caller invokes
// it once per open order per scheduling pass; it never schedules
// itself.
type Policy struct {
	cfg config.PolicyConfig
	log *logger.Logger
}

func NewPolicy(cfg config.PolicyConfig, log *logger.Logger) *Policy {
	return &Policy{
		cfg: cfg,
		log: log,
	}
}

// HandlePendingOrder closes a pending order that outlived its time
// threshold. The open time is recovered from the magic number; a
// non-numeric magic silently suppresses the rule.
func (p *Policy) HandlePendingOrder(t Trader, order models.Order, now time.Time) {
	openTime, err := models.MagicOpenTime(order.Magic())
	if err != nil {
		return
	}
	if now.Sub(openTime) > p.cfg.PendingCloseAfter {
		t.CloseOrdersByMagic(order.Magic())
		p.logEntry(order).Debug("Отложенный ордер закрыт по таймауту.")
	}
}

// HandleFilledOrder closes a filled order past the long threshold,
// otherwise evaluates break-even eligibility.
func (p *Policy) HandleFilledOrder(t Trader, order models.Order, now time.Time) {
	openTime, err := models.MagicOpenTime(order.Magic())
	if err != nil {
		return
	}
	if now.Sub(openTime) > p.cfg.FilledCloseAfter {
		t.CloseOrdersByMagic(order.Magic())
		p.logEntry(order).Debug("Исполненный ордер закрыт по таймауту.")
		return
	}
	p.checkBreakEven(t, order, openTime, now)
}

// checkBreakEven reports whether a break-even was placed this pass.
// An order whose stop-loss already crossed its entry is skipped.
func (p *Policy) checkBreakEven(t Trader, order models.Order, openTime, now time.Time) bool {
	placedBuy := order.Type().IsBuy() && order.StopLoss() > order.Price()
	placedSell := order.Type().IsSell() && order.StopLoss() < order.Price()
	if placedBuy || placedSell {
		return false
	}

	reachedTime := now.Sub(openTime) > p.cfg.BreakEvenAfter

	bid, ask := t.GetBidAsk(order.Symbol())
	mid := (bid + ask) / 2
	span := order.TakeProfit() - order.StopLoss()
	reachedPrice := false
	if span != 0 {
		reachedPrice = (mid-order.StopLoss())/span >= p.cfg.BreakEvenFraction
	}

	if !reachedTime && !reachedPrice {
		return false
	}
	t.PlaceBreakEven(order)
	p.logEntry(order).Debug("Запрошен перенос стопа в безубыток.")
	return true
}

func (p *Policy) logEntry(order models.Order) *logrus.Entry {
	return p.log.WithComponent("policy").
		WithField("symbol", order.Symbol()).
		WithField("magic", order.Magic())
}
