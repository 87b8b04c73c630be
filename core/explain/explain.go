// Package explain renders a tariff as prose: per element, the conditions
// under which it applies and the prices it defines.
package explain

import (
	"fmt"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/types"
)

// Explanation describes a whole tariff.
type Explanation struct {
	// Elements in document order.
	Elements []Element `json:"elements"`
}

// Element describes one tariff element.
type Element struct {
	// Restrictions are the human-readable conditions; empty means the
	// element always applies.
	Restrictions []string `json:"restrictions,omitempty"`

	// Components are the prices per dimension, rounded to OCPI scale.
	Components Components `json:"components"`
}

// Components holds the per-dimension price of an element, when defined.
type Components struct {
	Energy  *types.Money `json:"energy,omitempty"`
	Flat    *types.Money `json:"flat,omitempty"`
	Time    *types.Money `json:"time,omitempty"`
	Parking *types.Money `json:"parking_time,omitempty"`
}

// Explain describes the given tariff.
func Explain(tariff *ocpi.Tariff) Explanation {
	var explanation Explanation

	for _, element := range tariff.Elements {
		out := Element{}

		for _, component := range element.PriceComponents {
			price := component.Price.WithScale()
			switch component.Type {
			case ocpi.DimensionTypeEnergy:
				if out.Components.Energy == nil {
					out.Components.Energy = &price
				}
			case ocpi.DimensionTypeFlat:
				if out.Components.Flat == nil {
					out.Components.Flat = &price
				}
			case ocpi.DimensionTypeTime:
				if out.Components.Time == nil {
					out.Components.Time = &price
				}
			case ocpi.DimensionTypeParkingTime:
				if out.Components.Parking == nil {
					out.Components.Parking = &price
				}
			}
		}

		if element.Restrictions != nil {
			out.Restrictions = Restrictions(element.Restrictions)
		}

		explanation.Elements = append(explanation.Elements, out)
	}

	return explanation
}

// Restrictions renders one restriction as a list of conditions.
func Restrictions(r *ocpi.TariffRestriction) []string {
	var conditions []string

	switch {
	case r.MinKwh != nil && r.MaxKwh != nil:
		conditions = append(conditions, fmt.Sprintf("total energy is between %s and %s kWh", r.MinKwh, r.MaxKwh))
	case r.MinKwh != nil:
		conditions = append(conditions, fmt.Sprintf("total energy exceeds %s kWh", r.MinKwh))
	case r.MaxKwh != nil:
		conditions = append(conditions, fmt.Sprintf("total energy is less than %s kWh", r.MaxKwh))
	}

	switch {
	case r.StartTime != nil && r.EndTime != nil:
		conditions = append(conditions, fmt.Sprintf("between %s and %s", r.StartTime, r.EndTime))
	case r.StartTime != nil:
		conditions = append(conditions, fmt.Sprintf("after %s", r.StartTime))
	case r.EndTime != nil:
		conditions = append(conditions, fmt.Sprintf("before %s", r.EndTime))
	}

	switch {
	case r.MinDuration != nil && r.MaxDuration != nil:
		conditions = append(conditions, fmt.Sprintf("session duration is between %s and %s hours",
			r.MinDuration.Hours(), r.MaxDuration.Hours()))
	case r.MinDuration != nil:
		conditions = append(conditions, fmt.Sprintf("session duration exceeds %s hours", r.MinDuration.Hours()))
	case r.MaxDuration != nil:
		conditions = append(conditions, fmt.Sprintf("session duration is less than %s hours", r.MaxDuration.Hours()))
	}

	switch {
	case r.StartDate != nil && r.EndDate != nil:
		conditions = append(conditions, fmt.Sprintf("between %s and %s", r.StartDate, r.EndDate))
	case r.StartDate != nil:
		conditions = append(conditions, fmt.Sprintf("after %s", r.StartDate))
	case r.EndDate != nil:
		conditions = append(conditions, fmt.Sprintf("before %s", r.EndDate))
	}

	switch {
	case r.MinPower != nil && r.MaxPower != nil:
		conditions = append(conditions, fmt.Sprintf("charging speed is between %s and %s kW", r.MinPower, r.MaxPower))
	case r.MinPower != nil:
		conditions = append(conditions, fmt.Sprintf("charging speed exceeds %s kW", r.MinPower))
	case r.MaxPower != nil:
		conditions = append(conditions, fmt.Sprintf("charging speed is less than %s kW", r.MaxPower))
	}

	switch {
	case r.MinCurrent != nil && r.MaxCurrent != nil:
		conditions = append(conditions, fmt.Sprintf("current is between %s and %s A", r.MinCurrent, r.MaxCurrent))
	case r.MinCurrent != nil:
		conditions = append(conditions, fmt.Sprintf("current exceeds %s A", r.MinCurrent))
	case r.MaxCurrent != nil:
		conditions = append(conditions, fmt.Sprintf("current is less than %s A", r.MaxCurrent))
	}

	if len(r.DayOfWeek) > 0 {
		days := ""
		for i, day := range r.DayOfWeek {
			if i > 0 {
				days += ", "
			}
			days += string(day)
		}
		conditions = append(conditions, fmt.Sprintf("on %s", days))
	}

	if r.Reservation != nil {
		switch *r.Reservation {
		case ocpi.RestrictionReservation:
			conditions = append(conditions, "during a reservation")
		case ocpi.RestrictionReservationExpires:
			conditions = append(conditions, "after a reservation expired")
		}
	}

	return conditions
}
