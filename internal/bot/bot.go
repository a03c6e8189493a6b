package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mtbot/internal/config"
	"mtbot/internal/logger"
	"mtbot/internal/strategy"
	"mtbot/internal/terminal"
)

const (
	tradePassInterval  = time.Minute
	pendingCommandWarn = 900
)

// Bot wires the terminal client to the order lifecycle policy: it
// bootstraps the shared folder, subscribes to market data and runs a
// periodic pass over the open orders.
type Bot struct {
	cfg    *config.Config
	client *terminal.Client
	policy *strategy.Policy
	log    *logger.Logger
	runID  string
}

func New(cfg *config.Config, client *terminal.Client, policy *strategy.Policy, log *logger.Logger) *Bot {
	return &Bot{
		cfg:    cfg,
		client: client,
		policy: policy,
		log:    log,
		runID:  uuid.NewString(),
	}
}

func (b *Bot) RunID() string {
	return b.runID
}

// Run blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logEntry().Info("Бот запущен.")

	b.client.Start(ctx)
	defer b.client.Stop()

	b.bootstrap()

	ticker := time.NewTicker(tradePassInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logEntry().Info("Бот остановлен.")
			return ctx.Err()
		case <-ticker.C:
			now := time.Now().UTC()
			b.requestMissingHistoricalData()
			b.handleTrades(now)
		}
	}
}

// bootstrap clears the leftovers of a previous run and subscribes to
// everything the configured symbols need.
func (b *Bot) bootstrap() {
	b.client.CleanAllCommandFiles()
	b.client.CleanAllHistoricalFiles()
	b.client.CleanMessages()

	b.requestMissingHistoricalData()
	if err := b.client.RequestHistoricalTrades(); err != nil {
		b.logEntry().WithError(err).Error("Не удалось запросить историю сделок.")
	}

	if err := b.client.SubscribeSymbols(b.cfg.Trading.Symbols); err != nil {
		b.logEntry().WithError(err).Error("Не удалось подписаться на котировки.")
	}

	pairs := make([][2]string, 0, len(b.cfg.Trading.Symbols))
	for _, symbol := range b.cfg.Trading.Symbols {
		pairs = append(pairs, [2]string{symbol, b.cfg.Trading.Timeframe})
	}
	if err := b.client.SubscribeSymbolsBarData(pairs); err != nil {
		b.logEntry().WithError(err).Error("Не удалось подписаться на бары.")
	}
}

// requestMissingHistoricalData re-requests bars for every symbol whose
// history is not confirmed fresh yet, unless a command for it is
// already in flight.
func (b *Bot) requestMissingHistoricalData() {
	for _, symbol := range b.client.RemainingSymbols() {
		if b.client.CommandFileExists(symbol) {
			continue
		}
		if err := b.client.RequestHistoricalData(symbol, b.cfg.Trading.Timeframe); err != nil {
			b.logEntry().WithError(err).WithField("symbol", symbol).
				Error("Не удалось запросить исторические данные.")
		}
	}
}

// handleTrades runs one policy pass over the open orders.
func (b *Bot) handleTrades(now time.Time) {
	orders := b.client.OpenOrders()
	b.logEntry().WithField("orders", len(orders)).Debug("Проход по открытым ордерам.")

	for _, order := range orders {
		if order.Type().IsPending() {
			b.policy.HandlePendingOrder(b.client, order, now)
		} else {
			b.policy.HandleFilledOrder(b.client, order, now)
		}
	}

	if pending := b.client.PendingCommandFiles(); pending > pendingCommandWarn {
		b.logEntry().WithField("pending", pending).
			Warn("Терминал не потребляет файлы команд.")
	}
}

func (b *Bot) logEntry() *logrus.Entry {
	return b.log.WithComponent("bot").WithField("run_id", b.runID)
}
