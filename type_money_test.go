package folio

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m          Money
		want       string
		wantSigned string
	}{
		{USD(1234.5), "$1,234.50", "+$1,234.50"},
		{USD(-102), "-$102.00", "-$102.00"},
		{USD(0), "$0.00", "-"},
		{USD(10.005), "$10.01", "+$10.01"},
		{M(10, ""), "10.00", "+10.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.m.SignedString(); got != tt.wantSigned {
			t.Errorf("SignedString() = %q, want %q", got, tt.wantSigned)
		}
	}
}

func TestMoneyCurrency(t *testing.T) {
	// an amount without currency adopts the other one.
	if got := M(5, "").Add(USD(10)); !got.Equal(USD(15)) {
		t.Errorf("Add() = %v, want $15.00", got)
	}
	if got := USD(10).Sub(Money{}); !got.Equal(USD(10)) {
		t.Errorf("Sub() = %v, want $10.00", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Add() of two currencies must panic")
		}
	}()
	USD(1).Add(EUR(1))
}

func TestMoneyRatio(t *testing.T) {
	if got, ok := USD(5).Ratio(USD(20)); !ok || got != 0.25 {
		t.Errorf("Ratio() = %v, %v, want 0.25, true", got, ok)
	}
	if _, ok := USD(5).Ratio(USD(0)); ok {
		t.Error("Ratio() by zero must be undefined")
	}
}

func TestValidateCurrency(t *testing.T) {
	for code, wantErr := range map[string]bool{"USD": false, "EUR": false, "": true, "XYZ": true} {
		if err := ValidateCurrency(code); (err != nil) != wantErr {
			t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", code, err, wantErr)
		}
	}
}
