package pricer

import (
	"time"

	"ocpi-cost/core/tariff"
	"ocpi-cost/core/types"
)

// Volume is a billable quantity of one dimension. The only multiplication
// the engine performs is price-per-unit times one of these.
type Volume interface {
	// CostAt prices the volume at a per-unit price.
	CostAt(price types.Money) types.Money
}

// FlatUnit is the unit volume of the FLAT dimension.
type FlatUnit struct{}

// CostAt of the unit volume is the flat price itself.
func (FlatUnit) CostAt(price types.Money) types.Money {
	return price
}

// MarshalJSON emits the unit volume as 1.
func (FlatUnit) MarshalJSON() ([]byte, error) {
	return []byte("1"), nil
}

// DimensionReport is the outcome for one dimension during one sub-period.
type DimensionReport[V Volume] struct {
	// Price is the component that won this dimension; nil when none was
	// active.
	Price *tariff.Component `json:"price,omitempty"`

	// Volume consumed during the sub-period, as measured; nil when the
	// dimension reported nothing.
	Volume *V `json:"volume,omitempty"`

	// BilledVolume is Volume after step-size finalization. Step size is
	// applied over the whole session's volume, and the resulting extra
	// volume is billed on the component's last active sub-period; on every
	// other sub-period this equals Volume.
	BilledVolume *V `json:"billed_volume,omitempty"`

	// Gap marks a sub-period that consumed volume no tariff element
	// priced. The volume is billed at zero.
	Gap bool `json:"gap,omitempty"`
}

func newDimensionReport[V Volume](price *tariff.Component, volume *V) DimensionReport[V] {
	report := DimensionReport[V]{Price: price, Volume: volume}
	if volume != nil {
		billed := *volume
		report.BilledVolume = &billed
	}
	return report
}

// Cost is the price of this dimension during the sub-period, nil when no
// component was active or nothing was consumed.
func (d DimensionReport[V]) Cost() *types.Price {
	if d.Price == nil || d.BilledVolume == nil {
		return nil
	}
	cost := d.Price.Cost((*d.BilledVolume).CostAt(d.Price.Price))
	return &cost
}

// Dimensions is the per-dimension outcome of one sub-period.
type Dimensions struct {
	// Flat carries the one-shot session fee on the sub-period where it was
	// applied.
	Flat DimensionReport[FlatUnit] `json:"flat"`

	// Energy is the energy dimension, in kWh.
	Energy DimensionReport[types.Kwh] `json:"energy"`

	// Time is the charging time dimension, in decimal hours.
	Time DimensionReport[types.HoursDecimal] `json:"time"`

	// Parking is the parking time dimension, in decimal hours.
	Parking DimensionReport[types.HoursDecimal] `json:"parking_time"`

	// Reservation is reservation time priced by the winning TIME
	// component of a reservation-gated element.
	Reservation DimensionReport[types.HoursDecimal] `json:"reservation_time"`
}

// PeriodReport is the outcome of one sub-period of the session.
type PeriodReport struct {
	// PeriodIndex is the source charging period in the CDR; several
	// sub-periods may share it when calendar edges split a period.
	PeriodIndex int `json:"period_index"`

	// StartDateTime is the sub-period start in UTC.
	StartDateTime time.Time `json:"start_date_time"`

	// EndDateTime is the sub-period end in UTC.
	EndDateTime time.Time `json:"end_date_time"`

	// Dimensions holds the per-dimension outcome.
	Dimensions Dimensions `json:"dimensions"`
}

// Cost is the total of all dimensions during this sub-period, nil when none
// was priced.
func (p *PeriodReport) Cost() *types.Price {
	return sumPrices(
		p.Dimensions.Flat.Cost(),
		p.Dimensions.Energy.Cost(),
		p.Dimensions.Time.Cost(),
		p.Dimensions.Parking.Cost(),
		p.Dimensions.Reservation.Cost(),
	)
}

// Report is a charge session priced against one tariff. The total fields
// correspond to the CDR fields of the same name; monetary values carry full
// precision and are rounded at presentation only.
type Report struct {
	// TimeZone is the IANA zone all wall-clock restrictions evaluated in.
	TimeZone string `json:"time_zone"`

	// Currency of the session, ISO 4217 code.
	Currency string `json:"currency"`

	// TariffIndex is the position of the applied tariff in the input list.
	TariffIndex int `json:"tariff_index"`

	// TariffID is the OCPI id of the applied tariff.
	TariffID string `json:"tariff_id,omitempty"`

	// StartDateTime echoes the session start.
	StartDateTime time.Time `json:"start_date_time"`

	// EndDateTime echoes the session end.
	EndDateTime time.Time `json:"end_date_time"`

	// Periods are the priced sub-periods in order.
	Periods []*PeriodReport `json:"periods"`

	// TotalCost is the grand total, after min/max price clamping.
	TotalCost *types.Price `json:"total_cost,omitempty"`

	// TotalTimeCost is the charging time total.
	TotalTimeCost *types.Price `json:"total_time_cost,omitempty"`

	// TotalTime is the session duration, charging or not.
	TotalTime types.HoursDecimal `json:"total_time"`

	// TotalChargingTime is the measured charging duration.
	TotalChargingTime types.HoursDecimal `json:"total_charging_time"`

	// BilledChargingTime is the charging duration after step size.
	BilledChargingTime types.HoursDecimal `json:"billed_charging_time"`

	// TotalParkingCost is the parking time total.
	TotalParkingCost *types.Price `json:"total_parking_cost,omitempty"`

	// TotalParkingTime is the measured parking duration.
	TotalParkingTime types.HoursDecimal `json:"total_parking_time"`

	// BilledParkingTime is the parking duration after step size.
	BilledParkingTime types.HoursDecimal `json:"billed_parking_time"`

	// TotalEnergyCost is the energy total.
	TotalEnergyCost *types.Price `json:"total_energy_cost,omitempty"`

	// TotalEnergy is the measured energy, in kWh.
	TotalEnergy types.Kwh `json:"total_energy"`

	// BilledEnergy is the energy after step size.
	BilledEnergy types.Kwh `json:"billed_energy"`

	// TotalFixedCost is the flat fee total.
	TotalFixedCost *types.Price `json:"total_fixed_cost,omitempty"`

	// TotalReservationCost is the reservation time total.
	TotalReservationCost *types.Price `json:"total_reservation_cost,omitempty"`

	// TotalReservationTime is the measured reservation duration.
	TotalReservationTime types.HoursDecimal `json:"total_reservation_time"`

	// Warnings lists non-fatal conditions, such as consumed volume no
	// tariff element priced.
	Warnings []string `json:"warnings,omitempty"`
}

// sumPrices folds prices, keeping nil only when every operand is nil.
func sumPrices(prices ...*types.Price) *types.Price {
	var total *types.Price
	for _, p := range prices {
		if p == nil {
			continue
		}
		if total == nil {
			zero := types.PriceZero()
			total = &zero
		}
		sum := total.Add(*p)
		total = &sum
	}
	return total
}
