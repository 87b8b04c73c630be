package ocpi

import (
	"time"

	"ocpi-cost/core/types"
)

// TariffType profiles a tariff for driver preferences.
type TariffType string

// Tariff types defined by OCPI 2.2.1.
const (
	TariffTypeAdHocPayment TariffType = "AD_HOC_PAYMENT"
	TariffTypeProfileCheap TariffType = "PROFILE_CHEAP"
	TariffTypeProfileFast  TariffType = "PROFILE_FAST"
	TariffTypeProfileGreen TariffType = "PROFILE_GREEN"
	TariffTypeRegular      TariffType = "REGULAR"
)

// Tariff is the OCPI 2.2.1 tariff: an ordered list of elements with optional
// price caps and energy-mix metadata.
type Tariff struct {
	// CountryCode is the ISO 3166-1 code of the issuing CPO.
	CountryCode string `json:"country_code,omitempty"`

	// PartyID identifies the issuing party within its country.
	PartyID string `json:"party_id,omitempty"`

	// ID uniquely identifies the tariff within the CPO platform.
	ID string `json:"id"`

	// Currency of this tariff, ISO 4217 code.
	Currency string `json:"currency"`

	// Type profiles the tariff; absent means no profile.
	Type TariffType `json:"type,omitempty"`

	// MinPrice is the floor the session total is raised to, when present.
	MinPrice *types.Price `json:"min_price,omitempty"`

	// MaxPrice is the cap the session total is lowered to, when present.
	MaxPrice *types.Price `json:"max_price,omitempty"`

	// Elements is the ordered list of tariff elements. Order is
	// significant: the first element whose restriction holds wins each
	// dimension it defines.
	Elements []TariffElement `json:"elements"`

	// StartDateTime is when the tariff becomes active, when present.
	StartDateTime *time.Time `json:"start_date_time,omitempty"`

	// EndDateTime is when the tariff stops being active, when present.
	EndDateTime *time.Time `json:"end_date_time,omitempty"`

	// EnergyMix describes the energy source, informational only.
	EnergyMix *EnergyMix `json:"energy_mix,omitempty"`

	// LastUpdated is the timestamp of the last tariff update.
	LastUpdated time.Time `json:"last_updated,omitempty"`

	// VatUnknown marks a tariff that went through 2.1.1 up-conversion,
	// where VAT is not expressible. Costs priced under such a tariff omit
	// VAT-inclusive amounts. Never present on the wire.
	VatUnknown bool `json:"-"`
}

// EnergyMix describes the energy supplied under a tariff.
type EnergyMix struct {
	// IsGreenEnergy reports whether the energy is from renewable sources.
	IsGreenEnergy bool `json:"is_green_energy"`

	// SupplierName names the energy supplier.
	SupplierName string `json:"supplier_name,omitempty"`

	// EnergyProductName names the contracted energy product.
	EnergyProductName string `json:"energy_product_name,omitempty"`
}

// TariffDimensionType identifies what a price component bills.
type TariffDimensionType string

// Price-component dimension types defined by OCPI 2.2.1.
const (
	// DimensionTypeEnergy bills kWh; step_size multiplier is 1 Wh.
	DimensionTypeEnergy TariffDimensionType = "ENERGY"

	// DimensionTypeFlat bills a fixed fee; step_size has no unit.
	DimensionTypeFlat TariffDimensionType = "FLAT"

	// DimensionTypeParkingTime bills hours not charging; step_size
	// multiplier is 1 second.
	DimensionTypeParkingTime TariffDimensionType = "PARKING_TIME"

	// DimensionTypeTime bills hours charging; step_size multiplier is
	// 1 second.
	DimensionTypeTime TariffDimensionType = "TIME"
)

// PriceComponent prices a single dimension.
type PriceComponent struct {
	// Type is the dimension this component bills.
	Type TariffDimensionType `json:"type"`

	// Price per unit excluding VAT.
	Price types.Money `json:"price"`

	// Vat is the applicable VAT percentage; nil means no VAT applies.
	Vat *types.Vat `json:"vat,omitempty"`

	// StepSize is the minimum billable increment. Consumption is billed in
	// blocks of this size: with type TIME and step_size 300, six minutes
	// of charging bills as ten. Zero disables the rounding.
	StepSize int64 `json:"step_size"`
}

// TariffElement is one pricing rule: components gated by a restriction. An
// element without a restriction is always active.
type TariffElement struct {
	// PriceComponents are the prices this element defines.
	PriceComponents []PriceComponent `json:"price_components"`

	// Restrictions gate when this element applies; nil means always.
	Restrictions *TariffRestriction `json:"restrictions,omitempty"`
}

// ReservationRestrictionType gates an element on reservation state.
type ReservationRestrictionType string

// Reservation restriction values defined by OCPI 2.2.1.
const (
	// RestrictionReservation makes the element apply to reservation
	// periods.
	RestrictionReservation ReservationRestrictionType = "RESERVATION"

	// RestrictionReservationExpires makes the element apply to periods
	// after a reservation expired.
	RestrictionReservationExpires ReservationRestrictionType = "RESERVATION_EXPIRES"
)

// TariffRestriction is a conjunction of optional gates; every present gate
// must hold for the element to apply. Minimum bounds are inclusive, maximum
// bounds exclusive.
type TariffRestriction struct {
	// StartTime is the local wall-clock time the element is valid from.
	StartTime *types.OcpiTime `json:"start_time,omitempty"`

	// EndTime is the local wall-clock time the element is valid until.
	// A window with EndTime before StartTime wraps past midnight.
	EndTime *types.OcpiTime `json:"end_time,omitempty"`

	// StartDate is the local date the element is valid from.
	StartDate *types.OcpiDate `json:"start_date,omitempty"`

	// EndDate is the local date the element is valid until, exclusive.
	EndDate *types.OcpiDate `json:"end_date,omitempty"`

	// MinKwh gates on cumulative session energy, inclusive.
	MinKwh *types.Kwh `json:"min_kwh,omitempty"`

	// MaxKwh gates on cumulative session energy, exclusive.
	MaxKwh *types.Kwh `json:"max_kwh,omitempty"`

	// MinCurrent gates on the period's reported current, inclusive.
	MinCurrent *types.Ampere `json:"min_current,omitempty"`

	// MaxCurrent gates on the period's reported current, exclusive.
	MaxCurrent *types.Ampere `json:"max_current,omitempty"`

	// MinPower gates on the period's reported power, inclusive.
	MinPower *types.Kw `json:"min_power,omitempty"`

	// MaxPower gates on the period's reported power, exclusive.
	MaxPower *types.Kw `json:"max_power,omitempty"`

	// MinDuration gates on cumulative session duration in seconds,
	// inclusive.
	MinDuration *types.Seconds `json:"min_duration,omitempty"`

	// MaxDuration gates on cumulative session duration in seconds,
	// exclusive.
	MaxDuration *types.Seconds `json:"max_duration,omitempty"`

	// DayOfWeek limits the element to the named local weekdays.
	DayOfWeek []types.DayOfWeek `json:"day_of_week,omitempty"`

	// Reservation gates the element on reservation state.
	Reservation *ReservationRestrictionType `json:"reservation,omitempty"`
}
