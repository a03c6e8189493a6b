package models

import "testing"

func TestOrder_RiskBenefit(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		sl    float64
		tp    float64
		want  float64
	}{
		{"buy 2 to 1", 1.1000, 1.0950, 1.1100, 2},
		{"sell 2 to 1", 1.1000, 1.1050, 1.0900, 2},
		{"no stop distance", 1.1000, 1.1000, 1.1100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Mutable: MutableOrderDetails{Prices: OrderPrice{
				Price:      tt.price,
				StopLoss:   tt.sl,
				TakeProfit: tt.tp,
			}}}
			got := o.RiskBenefit()
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("Order.RiskBenefit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrder_Equal(t *testing.T) {
	a := Order{Ticket: 42, Immutable: ImmutableOrderDetails{Symbol: "EURUSD"}}
	b := Order{Ticket: 42, Immutable: ImmutableOrderDetails{Symbol: "USDJPY"}}
	c := Order{Ticket: 43, Immutable: ImmutableOrderDetails{Symbol: "EURUSD"}}

	if !a.Equal(b) {
		t.Errorf("orders with the same ticket must be equal")
	}
	if a.Equal(c) {
		t.Errorf("orders with different tickets must not be equal")
	}
}
