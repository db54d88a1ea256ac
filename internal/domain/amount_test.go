package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTokenAmountDisplayIsExact(t *testing.T) {
	onChains := []string{"0", "1", "7", "123456789", "1000000", "18446744073709551615", "45000000000000000000000"}

	for _, oc := range onChains {
		onChain := decimal.RequireFromString(oc)
		for decimals := 0; decimals <= 18; decimals++ {
			amt := NewTokenAmount(onChain, decimals)
			if !amt.Display.Mul(Pow10(decimals)).Equal(onChain) {
				t.Errorf("display %s * 10^%d != %s", amt.Display, decimals, oc)
			}
		}
	}
}

func TestNewTokenAmountNegativeDecimals(t *testing.T) {
	amt := NewTokenAmount(decimal.NewFromInt(500), -2)
	if amt.Decimals != 0 {
		t.Errorf("Decimals = %d, want 0", amt.Decimals)
	}
	if !amt.Display.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Display = %s, want 500", amt.Display)
	}
}

func TestTokenAmountMarshalJSON(t *testing.T) {
	amt := NewTokenAmount(decimal.NewFromInt(1234567), 6)

	data, err := json.Marshal(amt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"onChain":1234567,"decimals":6,"display":1.234567}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var back TokenAmount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Display.Equal(amt.Display) || back.Decimals != 6 {
		t.Errorf("decoded = %+v, want %+v", back, amt)
	}
}

func TestIsFungible(t *testing.T) {
	tests := []struct {
		quantity string
		want     bool
	}{
		{"0", false},
		{"1", false},
		{"2", true},
		{"1000000000", true},
	}

	for _, tt := range tests {
		if got := IsFungible(decimal.RequireFromString(tt.quantity)); got != tt.want {
			t.Errorf("IsFungible(%s) = %v, want %v", tt.quantity, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"", "0"},
		{"nope", "0"},
		{"3.9", "3"},
	}

	for _, tt := range tests {
		if got := ParseQuantity(tt.input); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseQuantity(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
