package types

// MoneyScale is the presentation scale for monetary amounts (minor units of
// the currency), used by Display. Internal math carries the full precision;
// String and JSON emission round to OcpiScale, not to this scale.
const MoneyScale = 2

// Money is a monetary amount. The currency is carried by the tariff, not by
// the value.
type Money struct {
	n Number
}

// MoneyFromNumber wraps a decimal amount.
func MoneyFromNumber(n Number) Money {
	return Money{n}
}

// MoneyZero returns a zero amount.
func MoneyZero() Money {
	return Money{}
}

// Add returns m + other, saturating.
func (m Money) Add(other Money) Money {
	return Money{m.n.Add(other.n)}
}

// Sub returns m - other, saturating.
func (m Money) Sub(other Money) Money {
	return Money{m.n.Sub(other.n)}
}

// ApplyVat returns m * (1 + vat/100).
func (m Money) ApplyVat(vat Vat) Money {
	return Money{m.n.Mul(vat.Fraction())}
}

// KwhCost is the cost of the given energy volume at this per-kWh price.
func (m Money) KwhCost(kwh Kwh) Money {
	return Money{m.n.Mul(kwh.Number())}
}

// TimeCost is the cost of the given duration at this per-hour price.
func (m Money) TimeCost(hours HoursDecimal) Money {
	return Money{m.n.Mul(hours.Hours())}
}

// WithScale rounds half-to-even to the OCPI scale.
func (m Money) WithScale() Money {
	return Money{m.n.WithScale()}
}

// Number returns the underlying decimal.
func (m Money) Number() Number {
	return m.n
}

// Cmp compares two amounts.
func (m Money) Cmp(other Money) int {
	return m.n.Cmp(other.n)
}

// Equal reports numeric equality.
func (m Money) Equal(other Money) bool {
	return m.n.Equal(other.n)
}

// IsSaturated reports whether the amount was clamped by saturation.
func (m Money) IsSaturated() bool {
	return m.n.IsSaturated()
}

// String renders at OCPI scale.
func (m Money) String() string {
	return m.n.StringFixed(OcpiScale)
}

// Display renders at presentation scale (2 decimals).
func (m Money) Display() string {
	return m.n.StringFixed(MoneyScale)
}

// MarshalJSON emits a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.n.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or quoted decimal.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.n.UnmarshalJSON(data)
}

// Vat is a value-added tax percentage.
type Vat struct {
	n Number
}

// VatFromNumber wraps a percentage.
func VatFromNumber(n Number) Vat {
	return Vat{n}
}

// Fraction returns 1 + vat/100, the multiplier that applies this VAT.
func (v Vat) Fraction() Number {
	hundredth, err := v.n.CheckedDiv(NumberFromInt(100))
	if err != nil {
		// Divisor is a constant, unreachable.
		panic(err)
	}
	return hundredth.Add(NumberFromInt(1))
}

// Number returns the percentage.
func (v Vat) Number() Number {
	return v.n
}

// String renders the percentage.
func (v Vat) String() string {
	return v.n.String()
}

// MarshalJSON emits a plain JSON number.
func (v Vat) MarshalJSON() ([]byte, error) {
	return v.n.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or quoted decimal.
func (v *Vat) UnmarshalJSON(data []byte) error {
	return v.n.UnmarshalJSON(data)
}

// Price is a monetary amount as a pair of values excluding and including
// VAT. InclVat is nil when no VAT could be determined (2.1.1 input).
type Price struct {
	// ExclVat is the amount excluding VAT.
	ExclVat Money `json:"excl_vat"`

	// InclVat is the amount including VAT, when known.
	InclVat *Money `json:"incl_vat,omitempty"`
}

// PriceZero returns a zero price with a known (zero) inclusive amount.
func PriceZero() Price {
	zero := MoneyZero()
	return Price{ExclVat: zero, InclVat: &zero}
}

// Add returns p + other. The inclusive amount survives only when both sides
// carry one.
func (p Price) Add(other Price) Price {
	sum := Price{ExclVat: p.ExclVat.Add(other.ExclVat)}
	if p.InclVat != nil && other.InclVat != nil {
		incl := p.InclVat.Add(*other.InclVat)
		sum.InclVat = &incl
	}
	return sum
}

// WithScale rounds both amounts half-to-even to the OCPI scale.
func (p Price) WithScale() Price {
	out := Price{ExclVat: p.ExclVat.WithScale()}
	if p.InclVat != nil {
		incl := p.InclVat.WithScale()
		out.InclVat = &incl
	}
	return out
}

// Equal reports equality of both amounts.
func (p Price) Equal(other Price) bool {
	if !p.ExclVat.Equal(other.ExclVat) {
		return false
	}
	if (p.InclVat == nil) != (other.InclVat == nil) {
		return false
	}
	if p.InclVat == nil {
		return true
	}
	return p.InclVat.Equal(*other.InclVat)
}
