package models

import (
	"testing"
	"time"
)

func TestMagicOpenTime_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	magic := NewMagicNumber(now)

	got, err := MagicOpenTime(magic)
	if err != nil {
		t.Fatalf("MagicOpenTime(%q) error = %v", magic, err)
	}
	if !got.Equal(now) {
		t.Errorf("MagicOpenTime(%q) = %v, want %v", magic, got, now)
	}
}

func TestMagicOpenTime_NonNumeric(t *testing.T) {
	for _, magic := range []string{"", "manual", "17.5x"} {
		if _, err := MagicOpenTime(magic); err == nil {
			t.Errorf("MagicOpenTime(%q) expected error", magic)
		}
	}
}
