package types

// Kwh is an energy volume in kilowatt hours.
type Kwh struct {
	n Number
}

// KwhFromNumber wraps a decimal kWh volume.
func KwhFromNumber(n Number) Kwh {
	return Kwh{n}
}

// KwhZero returns a zero volume.
func KwhZero() Kwh {
	return Kwh{}
}

// Add returns k + other, saturating.
func (k Kwh) Add(other Kwh) Kwh {
	return Kwh{k.n.Add(other.n)}
}

// Sub returns k - other, saturating.
func (k Kwh) Sub(other Kwh) Kwh {
	return Kwh{k.n.Sub(other.n)}
}

// WattHours returns the volume expressed in Wh.
func (k Kwh) WattHours() Number {
	return k.n.Mul(NumberFromInt(1000))
}

// KwhFromWattHours converts a Wh volume back to kWh.
func KwhFromWattHours(n Number) Kwh {
	q, err := n.CheckedDiv(NumberFromInt(1000))
	if err != nil {
		// Divisor is a constant, unreachable.
		panic(err)
	}
	return Kwh{q}
}

// Number returns the underlying decimal.
func (k Kwh) Number() Number {
	return k.n
}

// Cmp compares two volumes.
func (k Kwh) Cmp(other Kwh) int {
	return k.n.Cmp(other.n)
}

// Equal reports numeric equality.
func (k Kwh) Equal(other Kwh) bool {
	return k.n.Equal(other.n)
}

// IsZero reports whether the volume is zero.
func (k Kwh) IsZero() bool {
	return k.n.IsZero()
}

// IsNegative reports whether the volume is below zero.
func (k Kwh) IsNegative() bool {
	return k.n.IsNegative()
}

// WithScale rounds half-to-even to the OCPI scale.
func (k Kwh) WithScale() Kwh {
	return Kwh{k.n.WithScale()}
}

// CostAt is the cost of this volume at a per-kWh price.
func (k Kwh) CostAt(price Money) Money {
	return price.KwhCost(k)
}

// String renders at OCPI scale.
func (k Kwh) String() string {
	return k.n.StringFixed(OcpiScale)
}

// MarshalJSON emits a plain JSON number.
func (k Kwh) MarshalJSON() ([]byte, error) {
	return k.n.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or quoted decimal.
func (k *Kwh) UnmarshalJSON(data []byte) error {
	return k.n.UnmarshalJSON(data)
}

// Kw is a power value in kilowatts.
type Kw struct {
	n Number
}

// KwFromNumber wraps a decimal kW value.
func KwFromNumber(n Number) Kw {
	return Kw{n}
}

// Number returns the underlying decimal.
func (k Kw) Number() Number {
	return k.n
}

// Cmp compares two power values.
func (k Kw) Cmp(other Kw) int {
	return k.n.Cmp(other.n)
}

// String renders without trailing zeros.
func (k Kw) String() string {
	return k.n.String()
}

// MarshalJSON emits a plain JSON number.
func (k Kw) MarshalJSON() ([]byte, error) {
	return k.n.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or quoted decimal.
func (k *Kw) UnmarshalJSON(data []byte) error {
	return k.n.UnmarshalJSON(data)
}

// Ampere is a current value in amperes.
type Ampere struct {
	n Number
}

// AmpereFromNumber wraps a decimal ampere value.
func AmpereFromNumber(n Number) Ampere {
	return Ampere{n}
}

// Number returns the underlying decimal.
func (a Ampere) Number() Number {
	return a.n
}

// Cmp compares two current values.
func (a Ampere) Cmp(other Ampere) int {
	return a.n.Cmp(other.n)
}

// String renders without trailing zeros.
func (a Ampere) String() string {
	return a.n.String()
}

// MarshalJSON emits a plain JSON number.
func (a Ampere) MarshalJSON() ([]byte, error) {
	return a.n.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or quoted decimal.
func (a *Ampere) UnmarshalJSON(data []byte) error {
	return a.n.UnmarshalJSON(data)
}
