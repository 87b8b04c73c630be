package types

import (
	"encoding/json"
	"testing"
)

func TestNumberRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		scale    int32
		expected string
	}{
		{"half rounds down to even", "0.125", 2, "0.12"},
		{"half rounds up to even", "0.135", 2, "0.14"},
		{"no rounding needed", "0.13", 2, "0.13"},
		{"money scale half to even", "2.50005", 4, "2.5"},
		{"plain up", "0.126", 2, "0.13"},
		{"plain down", "0.124", 2, "0.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := MustNumber(tt.value)
			got := n.RoundBank(tt.scale)
			if got.String() != tt.expected {
				t.Errorf("RoundBank(%s, %d) = %s, want %s", tt.value, tt.scale, got, tt.expected)
			}
		})
	}
}

func TestNumberSaturates(t *testing.T) {
	huge := MustNumber("1e24")
	sum := huge.Mul(MustNumber("1e24"))

	if !sum.IsSaturated() {
		t.Fatal("expected multiplication far past the bound to saturate")
	}

	small := MustNumber("2.5")
	if small.IsSaturated() {
		t.Error("small value reported as saturated")
	}
}

func TestNumberCheckedDiv(t *testing.T) {
	n := MustNumber("10")

	if _, err := n.CheckedDiv(NumberFromInt(0)); err == nil {
		t.Fatal("expected an error dividing by zero")
	}

	q, err := n.CheckedDiv(NumberFromInt(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Equal(MustNumber("2.5")) {
		t.Errorf("10/4 = %s, want 2.5", q)
	}
}

func TestNumberJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"plain number", `0.25`, `0.25`},
		{"quoted number", `"0.25"`, `0.25`},
		{"integer", `10`, `10`},
		{"scale capped at four", `0.123456`, `0.1235`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			data, err := json.Marshal(n)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.out {
				t.Errorf("round trip of %s = %s, want %s", tt.in, data, tt.out)
			}
		})
	}
}

func TestMoneyVat(t *testing.T) {
	price := MoneyFromNumber(MustNumber("10"))

	vat := VatFromNumber(MustNumber("21"))
	if got := price.ApplyVat(vat); !got.Equal(MoneyFromNumber(MustNumber("12.1"))) {
		t.Errorf("10 with 21%% VAT = %s, want 12.1", got)
	}

	zeroVat := VatFromNumber(MustNumber("0"))
	if got := price.ApplyVat(zeroVat); !got.Equal(price) {
		t.Errorf("10 with 0%% VAT = %s, want 10", got)
	}
}

func TestPriceAddPropagatesUnknownVat(t *testing.T) {
	known := PriceZero()
	unknown := Price{ExclVat: MoneyFromNumber(MustNumber("5"))}

	sum := known.Add(unknown)
	if sum.InclVat != nil {
		t.Error("adding a VAT-unknown price should drop the inclusive amount")
	}
	if !sum.ExclVat.Equal(MoneyFromNumber(MustNumber("5"))) {
		t.Errorf("excl VAT sum = %s, want 5", sum.ExclVat)
	}
}

func TestMoneyDisplayScale(t *testing.T) {
	m := MoneyFromNumber(MustNumber("2.505"))
	if got := m.Display(); got != "2.50" {
		t.Errorf("Display() = %s, want 2.50 (half to even)", got)
	}
	if got := m.String(); got != "2.5050" {
		t.Errorf("String() = %s, want 2.5050", got)
	}
}
