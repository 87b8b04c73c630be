package pricer

import (
	"ocpi-cost/core/tariff"
	"ocpi-cost/core/types"
	"ocpi-cost/internal/errors"
)

// stepSize tracks, per dimension, the last sub-period in which a component
// was active together with consumed volume. Which sub-period is last is only
// known in retrospect, so the walk records candidates and a terminal pass
// rounds the session total up to the component's step size, billing the
// extra volume on that sub-period.
type stepSize struct {
	time    stepTracker
	parking stepTracker
	energy  stepTracker
}

type stepTracker struct {
	index     int
	component *tariff.Component
	active    bool
}

func (t *stepTracker) record(index int, component *tariff.Component) {
	t.index = index
	t.component = component
	t.active = true
}

// update records the dimensions for which this sub-period consumed volume
// under an active component.
func (s *stepSize) update(index int, components tariff.Components, vols volumes) {
	if vols.energy != nil && components.Energy != nil {
		s.energy.record(index, components.Energy)
	}
	if vols.time != nil && components.Time != nil {
		s.time.record(index, components.Time)
	}
	if vols.parking != nil && components.Parking != nil {
		s.parking.record(index, components.Parking)
	}
}

// applyEnergy rounds the session energy up to the component's step size in
// Wh and bills the delta on the last active sub-period.
func (s *stepSize) applyEnergy(periods []*PeriodReport, total types.Kwh) (types.Kwh, error) {
	if !s.energy.active || s.energy.component.StepSize == 0 {
		return total, nil
	}

	step := types.NumberFromInt(s.energy.component.StepSize)
	blocks, err := total.WattHours().CheckedDiv(step)
	if err != nil {
		return total, errors.Inconsistency("zero energy step size reached rounding")
	}
	billedTotal := types.KwhFromWattHours(blocks.Ceil().Mul(step))

	delta := billedTotal.Sub(total)
	billed := periods[s.energy.index].Dimensions.Energy.BilledVolume
	if billed == nil {
		return total, errors.Inconsistency("energy step size tracked a sub-period without volume")
	}
	*billed = billed.Add(delta)

	return billedTotal, nil
}

// applyTime rounds the session charging time up to the component's step
// size in seconds. When a PARKING_TIME component was active during the
// session, TIME rounding is suppressed; applyParking then rounds the parking
// time alone, not the combined duration.
func (s *stepSize) applyTime(periods []*PeriodReport, total types.HoursDecimal) (types.HoursDecimal, error) {
	if !s.time.active || s.parking.active {
		return total, nil
	}
	return s.applyDuration(total, s.time.component,
		periods[s.time.index].Dimensions.Time.BilledVolume)
}

// applyParking rounds the session parking time up to the component's step
// size in seconds.
func (s *stepSize) applyParking(periods []*PeriodReport, total types.HoursDecimal) (types.HoursDecimal, error) {
	if !s.parking.active {
		return total, nil
	}
	return s.applyDuration(total, s.parking.component,
		periods[s.parking.index].Dimensions.Parking.BilledVolume)
}

func (s *stepSize) applyDuration(total types.HoursDecimal, component *tariff.Component, billed *types.HoursDecimal) (types.HoursDecimal, error) {
	if component.StepSize == 0 {
		return total, nil
	}

	step := types.NumberFromInt(component.StepSize)
	blocks, err := total.Seconds().CheckedDiv(step)
	if err != nil {
		return total, errors.Inconsistency("zero duration step size reached rounding")
	}
	billedTotal, err := types.HoursFromSecondsNumber(blocks.Ceil().Mul(step))
	if err != nil {
		return total, errors.Wrap(errors.KindOverflow, "rounding duration to step size", err)
	}

	if billed == nil {
		return total, errors.Inconsistency("duration step size tracked a sub-period without volume")
	}
	*billed = billed.Add(billedTotal.Sub(total))

	return billedTotal, nil
}
