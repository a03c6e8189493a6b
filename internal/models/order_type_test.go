package models

import "testing"

func TestParseOrderType(t *testing.T) {
	valid := []string{"buy", "sell", "buylimit", "selllimit", "buystop", "sellstop"}
	for _, value := range valid {
		if _, err := ParseOrderType(value); err != nil {
			t.Errorf("ParseOrderType(%q) error = %v", value, err)
		}
	}
	for _, value := range []string{"", "BUY", "buy_limit", "market"} {
		if _, err := ParseOrderType(value); err == nil {
			t.Errorf("ParseOrderType(%q) expected error", value)
		}
	}
}

func TestOrderType_Predicates(t *testing.T) {
	tests := []struct {
		orderType OrderType
		isBuy     bool
		isPending bool
	}{
		{OrderTypeBuy, true, false},
		{OrderTypeSell, false, false},
		{OrderTypeBuyLimit, true, true},
		{OrderTypeSellLimit, false, true},
		{OrderTypeBuyStop, true, true},
		{OrderTypeSellStop, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.orderType.String(), func(t *testing.T) {
			if got := tt.orderType.IsBuy(); got != tt.isBuy {
				t.Errorf("IsBuy() = %v, want %v", got, tt.isBuy)
			}
			if got := tt.orderType.IsSell(); got == tt.isBuy {
				t.Errorf("IsSell() = %v, want %v", got, !tt.isBuy)
			}
			if got := tt.orderType.IsPending(); got != tt.isPending {
				t.Errorf("IsPending() = %v, want %v", got, tt.isPending)
			}
		})
	}
}

func TestMarketAndPendingOrderType(t *testing.T) {
	if got := MarketOrderType(true); got != OrderTypeBuy {
		t.Errorf("MarketOrderType(true) = %v", got)
	}
	if got := MarketOrderType(false); got != OrderTypeSell {
		t.Errorf("MarketOrderType(false) = %v", got)
	}
	if got := PendingOrderType(true); got != OrderTypeBuyLimit {
		t.Errorf("PendingOrderType(true) = %v", got)
	}
	if got := PendingOrderType(false); got != OrderTypeSellLimit {
		t.Errorf("PendingOrderType(false) = %v", got)
	}
}
