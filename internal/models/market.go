package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type SymbolQuote struct {
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	TickValue float64 `json:"tick_value"`
}

// Bar is the latest bar of one subscribed {symbol, timeframe} pair.
type Bar struct {
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	Time       string  `json:"time"`
	TickVolume float64 `json:"tick_volume"`
}

type HistoricalBar struct {
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	TickVolume float64 `json:"tick_volume"`
}

type TimedBar struct {
	Time time.Time
	HistoricalBar
}

// BarSeries holds historical bars in ascending time order.
type BarSeries []TimedBar

func (s BarSeries) Latest() (TimedBar, bool) {
	if len(s) == 0 {
		return TimedBar{}, false
	}
	return s[len(s)-1], true
}

func (s BarSeries) Equal(other BarSeries) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Time.Equal(other[i].Time) || s[i].HistoricalBar != other[i].HistoricalBar {
			return false
		}
	}
	return true
}

func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

type AccountInfo struct {
	Name       string  `json:"name"`
	Number     int64   `json:"number"`
	Currency   string  `json:"currency"`
	Leverage   int     `json:"leverage"`
	FreeMargin float64 `json:"free_margin"`
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
}

type HistoricalTrade struct {
	Magic      int64   `json:"magic"`
	Symbol     string  `json:"symbol"`
	Lots       float64 `json:"lots"`
	Type       string  `json:"type"`
	Entry      string  `json:"entry"`
	DealTime   string  `json:"deal_time"`
	DealPrice  float64 `json:"deal_price"`
	PnL        float64 `json:"pnl"`
	Commission float64 `json:"commission"`
	Swap       float64 `json:"swap"`
	Comment    string  `json:"comment"`
}

// PipSize returns the pip value for a symbol.
func PipSize(symbol string) float64 {
	if strings.Contains(symbol, "JPY") {
		return 0.01
	}
	return 0.0001
}

// TimeframeInterval converts a terminal timeframe code (M1, M15, H1,
// D1, W1, MN1) into its bar interval.
func TimeframeInterval(timeframe string) (time.Duration, error) {
	tf := strings.ToUpper(timeframe)
	if tf == "" {
		return 0, fmt.Errorf("пустой таймфрейм")
	}
	if tf == "MN1" {
		return 30 * 24 * time.Hour, nil
	}

	var unit time.Duration
	switch tf[0] {
	case 'M':
		unit = time.Minute
	case 'H':
		unit = time.Hour
	case 'D':
		unit = 24 * time.Hour
	case 'W':
		unit = 7 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("неизвестный таймфрейм: %q", timeframe)
	}

	n, err := strconv.Atoi(tf[1:])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("неизвестный таймфрейм: %q", timeframe)
	}
	return time.Duration(n) * unit, nil
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
