// Package v211 holds the OCPI 2.1.1 document structures. The engine only
// ever sees 2.2.1 documents; 2.1.1 input is up-converted by the parent ocpi
// package after decoding.
//
// The 2.1.1 data model is a strict subset of 2.2.1 with one exception: price
// components carry no VAT. Converted components are marked VAT-unknown so
// the report omits VAT-inclusive totals instead of inventing them.
package v211

import (
	"time"

	"ocpi-cost/core/types"
)

// Cdr is the OCPI 2.1.1 Charge Detail Record.
type Cdr struct {
	// StartDateTime is the start of the charging session.
	StartDateTime time.Time `json:"start_date_time"`

	// StopDateTime is the end of the charging session (2.2.1 renamed this
	// to end_date_time).
	StopDateTime time.Time `json:"stop_date_time"`

	// Currency of the CDR in ISO 4217 code.
	Currency string `json:"currency"`

	// Tariffs relevant to this session.
	Tariffs []Tariff `json:"tariffs,omitempty"`

	// ChargingPeriods make up the session.
	ChargingPeriods []ChargingPeriod `json:"charging_periods"`

	// TotalCost is the reported total; a bare amount in 2.1.1.
	TotalCost types.Money `json:"total_cost"`

	// TotalEnergy is the reported energy total, in kWh.
	TotalEnergy types.Kwh `json:"total_energy"`

	// TotalTime is the reported session duration, in decimal hours.
	TotalTime types.HoursDecimal `json:"total_time"`

	// TotalParkingTime is the reported time not charging.
	TotalParkingTime *types.HoursDecimal `json:"total_parking_time,omitempty"`

	// LastUpdated is the timestamp of the last CDR update.
	LastUpdated time.Time `json:"last_updated"`
}

// ChargingPeriod is a 2.1.1 charging period.
type ChargingPeriod struct {
	// StartDateTime is the start of the period.
	StartDateTime time.Time `json:"start_date_time"`

	// Dimensions are the values reported for this period.
	Dimensions []CdrDimension `json:"dimensions"`
}

// CdrDimension is a 2.1.1 period dimension. The type vocabulary is the
// 2.2.1 one minus the instantaneous CURRENT and POWER values.
type CdrDimension struct {
	// Type identifies the dimension, e.g. ENERGY or PARKING_TIME.
	Type string `json:"type"`

	// Volume is the consumed amount in the dimension's unit.
	Volume types.Number `json:"volume"`
}

// Tariff is the OCPI 2.1.1 tariff.
type Tariff struct {
	// ID uniquely identifies the tariff.
	ID string `json:"id"`

	// Currency of this tariff, ISO 4217 code.
	Currency string `json:"currency"`

	// Elements is the ordered list of tariff elements.
	Elements []TariffElement `json:"elements"`

	// StartDateTime is when the tariff becomes active, when present.
	StartDateTime *time.Time `json:"start_date_time,omitempty"`

	// EndDateTime is when the tariff stops being active, when present.
	EndDateTime *time.Time `json:"end_date_time,omitempty"`

	// LastUpdated is the timestamp of the last tariff update.
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// TariffElement is a 2.1.1 tariff element.
type TariffElement struct {
	// PriceComponents are the prices this element defines.
	PriceComponents []PriceComponent `json:"price_components"`

	// Restrictions gate when this element applies; nil means always.
	Restrictions *TariffRestriction `json:"restrictions,omitempty"`
}

// PriceComponent is a 2.1.1 price component; no VAT field exists at this
// version.
type PriceComponent struct {
	// Type is the dimension this component bills.
	Type string `json:"type"`

	// Price per unit.
	Price types.Money `json:"price"`

	// StepSize is the minimum billable increment.
	StepSize int64 `json:"step_size"`
}

// TariffRestriction is a 2.1.1 restriction; current and reservation gates
// don't exist at this version.
type TariffRestriction struct {
	StartTime   *types.OcpiTime   `json:"start_time,omitempty"`
	EndTime     *types.OcpiTime   `json:"end_time,omitempty"`
	StartDate   *types.OcpiDate   `json:"start_date,omitempty"`
	EndDate     *types.OcpiDate   `json:"end_date,omitempty"`
	MinKwh      *types.Kwh        `json:"min_kwh,omitempty"`
	MaxKwh      *types.Kwh        `json:"max_kwh,omitempty"`
	MinPower    *types.Kw         `json:"min_power,omitempty"`
	MaxPower    *types.Kw         `json:"max_power,omitempty"`
	MinDuration *types.Seconds    `json:"min_duration,omitempty"`
	MaxDuration *types.Seconds    `json:"max_duration,omitempty"`
	DayOfWeek   []types.DayOfWeek `json:"day_of_week,omitempty"`
}
