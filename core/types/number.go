// Package types defines the numeric and quantity types used throughout the
// pricing engine. All monetary and volume arithmetic is decimal-exact; no
// value in this package is ever backed by a float.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OcpiScale is the number of decimals OCPI prescribes for monetary amounts,
// energy volumes and decimal hours.
const OcpiScale = 4

// maxMagnitude is the saturation bound for all arithmetic. shopspring
// decimals are arbitrary precision, so a genuine wrap cannot occur; instead
// every operation clamps to this bound and IsSaturated reports the clamp.
var maxMagnitude = decimal.New(1, 24)

// Number is an exact decimal with saturating arithmetic and banker's
// rounding. The zero value is 0.
type Number struct {
	d decimal.Decimal
}

// NumberFromDecimal wraps a raw decimal.
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{saturate(d)}
}

// NumberFromInt converts an integer.
func NumberFromInt(v int64) Number {
	return Number{decimal.NewFromInt(v)}
}

// NumberFromString parses a decimal literal.
func NumberFromString(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Number{saturate(d)}, nil
}

// MustNumber parses a decimal literal and panics on malformed input. Only
// for constants and tests.
func MustNumber(s string) Number {
	n, err := NumberFromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

func saturate(d decimal.Decimal) decimal.Decimal {
	if d.Abs().GreaterThan(maxMagnitude) {
		if d.Sign() < 0 {
			return maxMagnitude.Neg()
		}
		return maxMagnitude
	}
	return d
}

// IsSaturated reports whether a previous operation clamped this value at the
// domain bound. Callers surface this as an overflow error.
func (n Number) IsSaturated() bool {
	return n.d.Abs().Equal(maxMagnitude)
}

// Add returns n + other, saturating.
func (n Number) Add(other Number) Number {
	return Number{saturate(n.d.Add(other.d))}
}

// Sub returns n - other, saturating.
func (n Number) Sub(other Number) Number {
	return Number{saturate(n.d.Sub(other.d))}
}

// Mul returns n * other, saturating.
func (n Number) Mul(other Number) Number {
	return Number{saturate(n.d.Mul(other.d))}
}

// CheckedDiv returns n / other, or an error when the divisor is zero.
// Division is never performed on an unchecked denominator.
func (n Number) CheckedDiv(other Number) (Number, error) {
	if other.d.IsZero() {
		return Number{}, fmt.Errorf("division by zero")
	}
	return Number{saturate(n.d.DivRound(other.d, 16))}, nil
}

// Ceil rounds up to the nearest integer.
func (n Number) Ceil() Number {
	return Number{n.d.Ceil()}
}

// WithScale rounds half-to-even to the OCPI scale of four decimals.
func (n Number) WithScale() Number {
	return Number{n.d.RoundBank(OcpiScale)}
}

// RoundBank rounds half-to-even to the given scale.
func (n Number) RoundBank(scale int32) Number {
	return Number{n.d.RoundBank(scale)}
}

// Cmp compares n with other: -1 if n < other, 0 if equal, +1 if n > other.
func (n Number) Cmp(other Number) int {
	return n.d.Cmp(other.d)
}

// Equal reports numeric equality, ignoring scale.
func (n Number) Equal(other Number) bool {
	return n.d.Equal(other.d)
}

// IsZero reports whether n is zero.
func (n Number) IsZero() bool {
	return n.d.IsZero()
}

// IsNegative reports whether n is below zero.
func (n Number) IsNegative() bool {
	return n.d.IsNegative()
}

// IsPositive reports whether n is above zero.
func (n Number) IsPositive() bool {
	return n.d.IsPositive()
}

// IntPart returns the integer part of n.
func (n Number) IntPart() int64 {
	return n.d.IntPart()
}

// Decimal returns the underlying decimal value.
func (n Number) Decimal() decimal.Decimal {
	return n.d
}

// String renders the value without trailing zeros.
func (n Number) String() string {
	return n.d.String()
}

// StringFixed renders the value rounded half-to-even at the given scale.
func (n Number) StringFixed(scale int32) string {
	return n.d.RoundBank(scale).StringFixed(scale)
}

// MarshalJSON emits the value as a plain JSON number at OCPI scale,
// normalized (no trailing zeros).
func (n Number) MarshalJSON() ([]byte, error) {
	r := n.d.RoundBank(OcpiScale)
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string, as both
// occur in OCPI documents in the wild.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	n.d = saturate(d)
	return nil
}
