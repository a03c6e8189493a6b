package bot

import (
	"github.com/sirupsen/logrus"

	"mtbot/internal/logger"
	"mtbot/internal/models"
	"mtbot/internal/terminal"
)

// Handler logs what the terminal reports. Trading reactions live in
// the periodic pass, not here.
type Handler struct {
	terminal.BaseEventHandler
	log *logger.Logger
}

func NewHandler(log *logger.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) OnMessage(_ *terminal.Client, message models.Message) {
	entry := h.logEntry().WithField("terminal_time", message.Time)
	if message.IsError() {
		entry.WithField("error_type", message.ErrorType).Error(message.Text)
		return
	}
	entry.Info(message.Text)
}

func (h *Handler) OnOrderEvent(_ *terminal.Client, account models.AccountInfo, orders []models.Order) {
	h.logEntry().
		WithField("orders", len(orders)).
		WithField("balance", account.Balance).
		WithField("equity", account.Equity).
		Debug("Состояние ордеров обновлено.")
}

func (h *Handler) OnHistoricalData(_ *terminal.Client, symbol string, series models.BarSeries) {
	h.logEntry().WithField("symbol", symbol).WithField("bars", len(series)).
		Debug("Получены исторические данные.")
}

func (h *Handler) OnHistoricalTrades(_ *terminal.Client, trades map[string]models.HistoricalTrade) {
	h.logEntry().WithField("trades", len(trades)).Debug("Получена история сделок.")
}

func (h *Handler) logEntry() *logrus.Entry {
	return h.log.WithComponent("handler")
}
