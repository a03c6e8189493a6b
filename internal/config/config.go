package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Terminal TerminalConfig
	Trading  TradingConfig
	Poll     PollConfig
	Lock     LockConfig
	Policy   PolicyConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

type TerminalConfig struct {
	FilesPath      string
	Prefix         string
	BrokerTimezone string
	BrokerLocation *time.Location
}

type TradingConfig struct {
	Symbols      []string
	Timeframe    string
	LookbackDays float64
	RiskRatio    float64
}

type PollConfig struct {
	Messages         time.Duration
	MarketData       time.Duration
	BarData          time.Duration
	Orders           time.Duration
	HistoricalData   time.Duration
	HistoricalTrades time.Duration
}

type LockConfig struct {
	File    string
	Timeout time.Duration
}

type PolicyConfig struct {
	PendingCloseAfter time.Duration
	FilledCloseAfter  time.Duration
	BreakEvenAfter    time.Duration
	BreakEvenFraction float64
	MinRiskBenefit    float64
}

type MetricsConfig struct {
	Addr string
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func Load() (*Config, error) {
	cfg := &Config{}
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.ReadInConfig()

	setDefaults()

	cfg.Terminal = TerminalConfig{
		FilesPath:      envSub("terminal.files_path"),
		Prefix:         viper.GetString("terminal.prefix"),
		BrokerTimezone: viper.GetString("terminal.broker_timezone"),
	}

	cfg.Trading = TradingConfig{
		Symbols:      viper.GetStringSlice("trading.symbols"),
		Timeframe:    viper.GetString("trading.timeframe"),
		LookbackDays: viper.GetFloat64("trading.lookback_days"),
		RiskRatio:    viper.GetFloat64("trading.risk_ratio"),
	}

	cfg.Poll = PollConfig{
		Messages:         viper.GetDuration("poll.messages"),
		MarketData:       viper.GetDuration("poll.market_data"),
		BarData:          viper.GetDuration("poll.bar_data"),
		Orders:           viper.GetDuration("poll.orders"),
		HistoricalData:   viper.GetDuration("poll.historical_data"),
		HistoricalTrades: viper.GetDuration("poll.historical_trades"),
	}

	cfg.Lock = LockConfig{
		File:    envSub("lock.file"),
		Timeout: viper.GetDuration("lock.timeout"),
	}

	cfg.Policy = PolicyConfig{
		PendingCloseAfter: viper.GetDuration("policy.pending_close_after"),
		FilledCloseAfter:  viper.GetDuration("policy.filled_close_after"),
		BreakEvenAfter:    viper.GetDuration("policy.break_even_after"),
		BreakEvenFraction: viper.GetFloat64("policy.break_even_fraction"),
		MinRiskBenefit:    viper.GetFloat64("policy.min_risk_benefit"),
	}

	cfg.Metrics = MetricsConfig{
		Addr: viper.GetString("metrics.addr"),
	}

	cfg.Log = LogConfig{
		Level:      viper.GetString("runtime.log.level"),
		Format:     viper.GetString("runtime.log.format"),
		File:       viper.GetString("runtime.log.file"),
		MaxSize:    viper.GetInt("runtime.log.max_size"),
		MaxBackups: viper.GetInt("runtime.log.max_backups"),
		MaxAge:     viper.GetInt("runtime.log.max_age"),
		Compress:   viper.GetBool("runtime.log.compress"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	info, err := os.Stat(c.Terminal.FilesPath)
	if err != nil {
		return fmt.Errorf("каталог файлов терминала недоступен: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("путь файлов терминала не является каталогом: %s", c.Terminal.FilesPath)
	}

	loc, err := time.LoadLocation(c.Terminal.BrokerTimezone)
	if err != nil {
		return fmt.Errorf("неизвестная таймзона брокера %q: %w", c.Terminal.BrokerTimezone, err)
	}
	c.Terminal.BrokerLocation = loc

	if len(c.Trading.Symbols) == 0 {
		return fmt.Errorf("не задан список торговых символов")
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("terminal.prefix", "AgentFiles")
	viper.SetDefault("terminal.broker_timezone", "UTC")

	viper.SetDefault("trading.symbols", []string{"EURUSD"})
	viper.SetDefault("trading.timeframe", "M5")
	viper.SetDefault("trading.lookback_days", 10.0)
	viper.SetDefault("trading.risk_ratio", 1.0)

	viper.SetDefault("poll.messages", time.Second)
	viper.SetDefault("poll.market_data", 500*time.Millisecond)
	viper.SetDefault("poll.bar_data", 500*time.Millisecond)
	viper.SetDefault("poll.orders", time.Second)
	viper.SetDefault("poll.historical_data", 5*time.Second)
	viper.SetDefault("poll.historical_trades", 5*time.Second)

	viper.SetDefault("lock.file", "/tmp/mtbot.lock")
	viper.SetDefault("lock.timeout", 5*time.Minute)

	viper.SetDefault("policy.pending_close_after", time.Hour)
	viper.SetDefault("policy.filled_close_after", 24*time.Hour)
	viper.SetDefault("policy.break_even_after", 12*time.Hour)
	viper.SetDefault("policy.break_even_fraction", 0.75)
	viper.SetDefault("policy.min_risk_benefit", 1.5)

	viper.SetDefault("runtime.log.level", "info")
	viper.SetDefault("runtime.log.format", "text")
}

func envSub(key string) string {
	val := viper.GetString(key)
	if val == "" {
		return ""
	}

	re := regexp.MustCompile(`\$\{(\w+)\}`)
	return re.ReplaceAllStringFunc(val, func(match string) string {
		envKey := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(envKey)
	})
}
