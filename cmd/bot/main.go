package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mtbot/internal/bot"
	"mtbot/internal/config"
	"mtbot/internal/lock"
	"mtbot/internal/logger"
	"mtbot/internal/metrics"
	"mtbot/internal/strategy"
	"mtbot/internal/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Бот завершился с ошибкой.")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	blocker := lock.New(cfg.Lock.File, cfg.Lock.Timeout, log)
	if err := blocker.Acquire(); err != nil {
		return err
	}
	defer blocker.Release()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, log)
	}

	client := terminal.New(cfg, bot.NewHandler(log), log)
	policy := strategy.NewPolicy(cfg.Policy, log)
	b := bot.New(cfg, client, policy, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Run(ctx)
	}()

	select {
	case <-sigCh:
		cancel()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

func serveMetrics(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("Сервер метрик завершился с ошибкой.")
	}
}
