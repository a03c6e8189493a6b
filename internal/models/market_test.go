package models

import (
	"testing"
	"time"
)

func TestPipSize(t *testing.T) {
	tests := []struct {
		symbol string
		want   float64
	}{
		{"EURUSD", 0.0001},
		{"USDJPY", 0.01},
		{"GBPJPY", 0.01},
		{"AUDUSD", 0.0001},
	}
	for _, tt := range tests {
		if got := PipSize(tt.symbol); got != tt.want {
			t.Errorf("PipSize(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}

func TestTimeframeInterval(t *testing.T) {
	tests := []struct {
		timeframe string
		want      time.Duration
	}{
		{"M1", time.Minute},
		{"M5", 5 * time.Minute},
		{"M15", 15 * time.Minute},
		{"H1", time.Hour},
		{"H4", 4 * time.Hour},
		{"D1", 24 * time.Hour},
		{"W1", 7 * 24 * time.Hour},
		{"MN1", 30 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			got, err := TimeframeInterval(tt.timeframe)
			if err != nil {
				t.Fatalf("TimeframeInterval(%q) error = %v", tt.timeframe, err)
			}
			if got != tt.want {
				t.Errorf("TimeframeInterval(%q) = %v, want %v", tt.timeframe, got, tt.want)
			}
		})
	}

	for _, timeframe := range []string{"", "X5", "M", "M0", "Mx"} {
		if _, err := TimeframeInterval(timeframe); err == nil {
			t.Errorf("TimeframeInterval(%q) expected error", timeframe)
		}
	}
}

func TestBarSeries(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	series := BarSeries{
		{Time: base, HistoricalBar: HistoricalBar{Close: 1.1}},
		{Time: base.Add(5 * time.Minute), HistoricalBar: HistoricalBar{Close: 1.2}},
	}

	latest, ok := series.Latest()
	if !ok || latest.Close != 1.2 {
		t.Errorf("Latest() = %v, %v", latest, ok)
	}
	if _, ok := (BarSeries{}).Latest(); ok {
		t.Errorf("Latest() on empty series must report false")
	}

	same := BarSeries{
		{Time: base, HistoricalBar: HistoricalBar{Close: 1.1}},
		{Time: base.Add(5 * time.Minute), HistoricalBar: HistoricalBar{Close: 1.2}},
	}
	if !series.Equal(same) {
		t.Errorf("Equal() must hold for identical series")
	}
	same[1].Close = 1.3
	if series.Equal(same) {
		t.Errorf("Equal() must fail on a changed bar")
	}
	if series.Equal(series[:1]) {
		t.Errorf("Equal() must fail on different lengths")
	}

	closes := series.Closes()
	if len(closes) != 2 || closes[0] != 1.1 || closes[1] != 1.2 {
		t.Errorf("Closes() = %v", closes)
	}
}
