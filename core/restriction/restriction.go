// Package restriction compiles tariff restrictions into evaluable gate sets.
// A gate set is a conjunction: every present gate must hold for the element
// to apply. Each gate is data, not behavior; evaluation splits into the
// instant-based gates (calendar and cumulative thresholds, tested at a
// sub-period start) and the period-based gates (reported current, power and
// reservation state, which qualify a period wholly or not at all).
//
// OCPI bound conventions: minimum gates are inclusive, maximum gates
// exclusive.
package restriction

import (
	"time"

	"ocpi-cost/core/calendar"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/session"
	"ocpi-cost/core/types"
)

// Set is a compiled restriction. The zero value has no gates and always
// holds.
type Set struct {
	startTime *types.OcpiTime
	endTime   *types.OcpiTime
	startDate *types.OcpiDate
	endDate   *types.OcpiDate

	daysOfWeek map[time.Weekday]bool

	minKwh *types.Kwh
	maxKwh *types.Kwh

	minCurrent *types.Ampere
	maxCurrent *types.Ampere
	minPower   *types.Kw
	maxPower   *types.Kw

	minDuration *time.Duration
	maxDuration *time.Duration

	reservation *ocpi.ReservationRestrictionType
}

// Compile builds a gate set from a wire restriction. A nil restriction
// compiles to the empty, always-holding set.
func Compile(r *ocpi.TariffRestriction) Set {
	if r == nil {
		return Set{}
	}

	set := Set{
		startTime:   r.StartTime,
		endTime:     r.EndTime,
		startDate:   r.StartDate,
		endDate:     r.EndDate,
		minKwh:      r.MinKwh,
		maxKwh:      r.MaxKwh,
		minCurrent:  r.MinCurrent,
		maxCurrent:  r.MaxCurrent,
		minPower:    r.MinPower,
		maxPower:    r.MaxPower,
		reservation: r.Reservation,
	}

	if r.MinDuration != nil {
		d := r.MinDuration.Duration()
		set.minDuration = &d
	}
	if r.MaxDuration != nil {
		d := r.MaxDuration.Duration()
		set.maxDuration = &d
	}

	if len(r.DayOfWeek) > 0 {
		set.daysOfWeek = make(map[time.Weekday]bool, len(r.DayOfWeek))
		for _, day := range r.DayOfWeek {
			wd, err := day.Weekday()
			if err != nil {
				// Unknown weekday names are ignored for forward
				// compatibility; the remaining names still gate.
				continue
			}
			set.daysOfWeek[wd] = true
		}
	}

	return set
}

// HoldsAt evaluates the instant-based gates at the given session instant:
// wall-clock window, date window, weekday, cumulative energy and cumulative
// duration.
func (s Set) HoldsAt(instant session.Instant) bool {
	if s.startTime != nil || s.endTime != nil {
		if !calendar.InTimeWindow(instant.DateTime, instant.Zone(), s.startTime, s.endTime) {
			return false
		}
	}

	if s.startDate != nil {
		if instant.LocalDate().Before(*s.startDate) {
			return false
		}
	}
	if s.endDate != nil {
		if !instant.LocalDate().Before(*s.endDate) {
			return false
		}
	}

	if s.daysOfWeek != nil && !s.daysOfWeek[instant.LocalWeekday()] {
		return false
	}

	if s.minKwh != nil && instant.TotalEnergy.Cmp(*s.minKwh) < 0 {
		return false
	}
	if s.maxKwh != nil && instant.TotalEnergy.Cmp(*s.maxKwh) >= 0 {
		return false
	}

	if s.minDuration != nil && instant.TotalDuration < *s.minDuration {
		return false
	}
	if s.maxDuration != nil && instant.TotalDuration >= *s.maxDuration {
		return false
	}

	return true
}

// HoldsFor evaluates the period-based gates against the period's reported
// data. A gate whose counterpart value is unreported holds, matching the
// reference behavior for sparse CDRs.
func (s Set) HoldsFor(data session.PeriodData) bool {
	if s.minCurrent != nil && data.MinCurrent != nil && data.MinCurrent.Cmp(*s.minCurrent) < 0 {
		return false
	}
	if s.maxCurrent != nil && data.MaxCurrent != nil && data.MaxCurrent.Cmp(*s.maxCurrent) >= 0 {
		return false
	}
	if s.minPower != nil && data.MinPower != nil && data.MinPower.Cmp(*s.minPower) < 0 {
		return false
	}
	if s.maxPower != nil && data.MaxPower != nil && data.MaxPower.Cmp(*s.maxPower) >= 0 {
		return false
	}

	if s.reservation != nil {
		switch *s.reservation {
		case ocpi.RestrictionReservation:
			if !data.IsReservation() {
				return false
			}
		case ocpi.RestrictionReservationExpires:
			if data.IsReservation() {
				return false
			}
		}
	}

	return true
}

// Holds evaluates the full conjunction for a sub-period: the instant gates
// at its start and the period gates against its data.
func (s Set) Holds(p *session.Period) bool {
	return s.HoldsAt(p.Start) && s.HoldsFor(p.Data)
}

// IsReservationGated reports whether the set requires reservation periods.
func (s Set) IsReservationGated() bool {
	return s.reservation != nil && *s.reservation == ocpi.RestrictionReservation
}

// TimeEdges returns the wall-clock edges at which this set's time window
// gates can flip, for interval subdivision.
func (s Set) TimeEdges() []types.OcpiTime {
	var edges []types.OcpiTime
	if s.startTime != nil {
		edges = append(edges, *s.startTime)
	}
	if s.endTime != nil {
		edges = append(edges, *s.endTime)
	}
	return edges
}
