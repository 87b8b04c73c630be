// Package ocpi defines the OCPI 2.2.1 document structures that enter the
// pricing engine, plus the JSON codecs and version detection that feed them.
// This package contains no pricing logic.
package ocpi

import (
	"time"

	"ocpi-cost/core/types"
)

// Cdr is the OCPI 2.2.1 Charge Detail Record: the authoritative description
// of a charging session and the costs reported by its origin.
type Cdr struct {
	// CountryCode is the ISO 3166-1 alpha-2 or alpha-3 code of the CPO,
	// used as a best-effort time zone hint when no zone is configured.
	CountryCode string `json:"country_code,omitempty"`

	// StartDateTime is the start of the charging session.
	StartDateTime time.Time `json:"start_date_time"`

	// EndDateTime is the end of the charging session.
	EndDateTime time.Time `json:"end_date_time"`

	// Currency of the CDR in ISO 4217 code.
	Currency string `json:"currency"`

	// Tariffs are the tariffs relevant to this session.
	Tariffs []Tariff `json:"tariffs,omitempty"`

	// ChargingPeriods make up the session. Each period ends where the next
	// starts; the last period ends at EndDateTime.
	ChargingPeriods []ChargingPeriod `json:"charging_periods"`

	// TotalCost is the total cost reported by the origin.
	TotalCost types.Price `json:"total_cost"`

	// TotalFixedCost is the reported cost of the flat dimension.
	TotalFixedCost *types.Price `json:"total_fixed_cost,omitempty"`

	// TotalEnergy is the reported energy total, in kWh.
	TotalEnergy types.Kwh `json:"total_energy"`

	// TotalEnergyCost is the reported cost of the energy dimension.
	TotalEnergyCost *types.Price `json:"total_energy_cost,omitempty"`

	// TotalTime is the reported session duration, in decimal hours.
	TotalTime types.HoursDecimal `json:"total_time"`

	// TotalTimeCost is the reported cost of the charging time dimension.
	TotalTimeCost *types.Price `json:"total_time_cost,omitempty"`

	// TotalParkingTime is the reported time not charging, in decimal hours.
	TotalParkingTime *types.HoursDecimal `json:"total_parking_time,omitempty"`

	// TotalParkingCost is the reported cost of the parking dimension.
	TotalParkingCost *types.Price `json:"total_parking_cost,omitempty"`

	// TotalReservationCost is the reported cost of reservation time.
	TotalReservationCost *types.Price `json:"total_reservation_cost,omitempty"`

	// LastUpdated is the timestamp of the last CDR update.
	LastUpdated time.Time `json:"last_updated"`
}

// CdrDimensionType identifies what a charging-period dimension reports.
type CdrDimensionType string

// Dimension types defined by OCPI 2.2.1.
const (
	DimensionCurrent         CdrDimensionType = "CURRENT"
	DimensionEnergy          CdrDimensionType = "ENERGY"
	DimensionMaxCurrent      CdrDimensionType = "MAX_CURRENT"
	DimensionMinCurrent      CdrDimensionType = "MIN_CURRENT"
	DimensionMaxPower        CdrDimensionType = "MAX_POWER"
	DimensionMinPower        CdrDimensionType = "MIN_POWER"
	DimensionParkingTime     CdrDimensionType = "PARKING_TIME"
	DimensionPower           CdrDimensionType = "POWER"
	DimensionReservationTime CdrDimensionType = "RESERVATION_TIME"
	DimensionTime            CdrDimensionType = "TIME"
)

// CdrDimension is the volume consumed for one dimension during a period.
type CdrDimension struct {
	// Type identifies the dimension.
	Type CdrDimensionType `json:"type"`

	// Volume is the consumed amount in the dimension's unit.
	Volume types.Number `json:"volume"`
}

// ChargingPeriod is a slice of the session with a constant set of reported
// dimensions. A period ends where the next one starts.
type ChargingPeriod struct {
	// StartDateTime is the start of the period.
	StartDateTime time.Time `json:"start_date_time"`

	// Dimensions are the values reported for this period.
	Dimensions []CdrDimension `json:"dimensions"`

	// TariffID optionally references the tariff applicable to this period.
	TariffID string `json:"tariff_id,omitempty"`
}
