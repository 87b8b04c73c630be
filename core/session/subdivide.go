package session

import (
	"time"

	"ocpi-cost/core/calendar"
	"ocpi-cost/core/types"
)

// Subdivide splits the period at every local midnight and every given
// wall-clock edge, producing the maximal sub-periods over which calendar
// restrictions are constant. Reported volumes are prorated over the
// sub-periods by wall-clock share; the final sub-period absorbs the
// remainder so the parts always sum exactly to the whole.
func (p *Period) Subdivide(edges []types.OcpiTime) []*Period {
	intervals := calendar.SplitAtLocalEdges(p.Start.DateTime, p.End.DateTime, p.Start.zone, edges)
	if len(intervals) <= 1 {
		return []*Period{p}
	}

	total := p.End.DateTime.Sub(p.Start.DateTime)

	var (
		subs       []*Period
		energyLeft types.Kwh
	)
	if p.Data.Energy != nil {
		energyLeft = *p.Data.Energy
	}
	chargingLeft := durationLeft(p.Data.ChargingDuration)
	parkingLeft := durationLeft(p.Data.ParkingDuration)
	reservationLeft := durationLeft(p.Data.ReservationDuration)

	cursor := p.Start
	for i, iv := range intervals {
		last := i == len(intervals)-1
		share := iv.Duration()

		data := PeriodData{
			MinCurrent: p.Data.MinCurrent,
			MaxCurrent: p.Data.MaxCurrent,
			MinPower:   p.Data.MinPower,
			MaxPower:   p.Data.MaxPower,
		}

		if p.Data.Energy != nil {
			part := prorateEnergy(*p.Data.Energy, share, total)
			if last {
				part = energyLeft
			}
			energyLeft = energyLeft.Sub(part)
			data.Energy = &part
		}
		if p.Data.ChargingDuration != nil {
			part := prorateDuration(p.Data.ChargingDuration.Duration(), share, total)
			if last {
				part = chargingLeft
			}
			chargingLeft -= part
			h := types.HoursFromDuration(part)
			data.ChargingDuration = &h
		}
		if p.Data.ParkingDuration != nil {
			part := prorateDuration(p.Data.ParkingDuration.Duration(), share, total)
			if last {
				part = parkingLeft
			}
			parkingLeft -= part
			h := types.HoursFromDuration(part)
			data.ParkingDuration = &h
		}
		if p.Data.ReservationDuration != nil {
			part := prorateDuration(p.Data.ReservationDuration.Duration(), share, total)
			if last {
				part = reservationLeft
			}
			reservationLeft -= part
			h := types.HoursFromDuration(part)
			data.ReservationDuration = &h
		}

		sub := &Period{
			Index: p.Index,
			Data:  data,
			Start: cursor,
		}
		cursor = cursor.next(data, iv.End)
		sub.End = cursor

		subs = append(subs, sub)
	}

	return subs
}

func durationLeft(h *types.HoursDecimal) time.Duration {
	if h == nil {
		return 0
	}
	return h.Duration()
}

// prorateEnergy computes energy * share/total exactly in decimal.
func prorateEnergy(energy types.Kwh, share, total time.Duration) types.Kwh {
	frac, err := types.NumberFromInt(share.Milliseconds()).
		CheckedDiv(types.NumberFromInt(total.Milliseconds()))
	if err != nil {
		// A period with zero wall duration is never subdivided.
		return energy
	}
	return types.KwhFromNumber(energy.Number().Mul(frac))
}

// prorateDuration computes d * share/total in integer milliseconds.
func prorateDuration(d time.Duration, share, total time.Duration) time.Duration {
	if total == 0 {
		return d
	}
	ms := d.Milliseconds() * share.Milliseconds() / total.Milliseconds()
	return time.Duration(ms) * time.Millisecond
}
