// Package session normalizes a CDR into the form the pricing walk consumes:
// periods with explicit ends, per-period reported data, and cumulative
// session state at each period boundary.
package session

import (
	"time"

	"ocpi-cost/core/calendar"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/types"
	"ocpi-cost/internal/errors"
)

// Session is an immutable, normalized charge session.
type Session struct {
	// StartDateTime is the session start in UTC.
	StartDateTime time.Time

	// EndDateTime is the session end in UTC.
	EndDateTime time.Time

	// Currency of the session, ISO 4217 code.
	Currency string

	// Zone is the local zone all wall-clock restrictions evaluate in.
	Zone *time.Location

	// Periods are the normalized charging periods, in order.
	Periods []*Period
}

// Period is one charging period with an explicit end: a period ends where
// the next one starts, the last one ends at the session end.
type Period struct {
	// Index of the source charging period in the CDR. Sub-periods produced
	// by subdivision share their parent's index.
	Index int

	// Data holds the values reported for the whole period.
	Data PeriodData

	// Start holds the cumulative session state at the period start.
	Start Instant

	// End holds the cumulative session state at the period end.
	End Instant
}

// PeriodData holds the properties valid for the entirety of one period.
type PeriodData struct {
	MinCurrent *types.Ampere
	MaxCurrent *types.Ampere
	MinPower   *types.Kw
	MaxPower   *types.Kw

	// ChargingDuration is the reported time spent charging, when present.
	ChargingDuration *types.HoursDecimal

	// ParkingDuration is the reported time not charging, when present.
	ParkingDuration *types.HoursDecimal

	// ReservationDuration is the reported reservation time, when present.
	ReservationDuration *types.HoursDecimal

	// Energy is the energy delivered during the period, when present.
	Energy *types.Kwh
}

// IsCharging reports whether the period counts toward charging time: it
// reports a TIME dimension or delivers energy.
func (d PeriodData) IsCharging() bool {
	if d.ChargingDuration != nil {
		return true
	}
	return d.Energy != nil && d.Energy.Number().IsPositive()
}

// IsReservation reports whether the period is a reservation period.
func (d PeriodData) IsReservation() bool {
	return d.ReservationDuration != nil
}

// Instant is the cumulative session state at a point in time.
type Instant struct {
	// DateTime is the instant in UTC.
	DateTime time.Time

	// TotalDuration is the session duration elapsed at this instant.
	TotalDuration time.Duration

	// TotalChargingDuration is the charging time elapsed at this instant.
	TotalChargingDuration time.Duration

	// TotalEnergy is the session energy delivered at this instant.
	TotalEnergy types.Kwh

	zone *time.Location
}

// LocalTime is the wall-clock time of the instant in the session zone.
func (i Instant) LocalTime() types.OcpiTime {
	local := i.DateTime.In(i.zone)
	return types.NewOcpiTime(local.Hour(), local.Minute())
}

// LocalDate is the calendar date of the instant in the session zone.
func (i Instant) LocalDate() types.OcpiDate {
	return calendar.LocalDate(i.DateTime, i.zone)
}

// LocalWeekday is the weekday of the instant in the session zone.
func (i Instant) LocalWeekday() time.Weekday {
	return calendar.LocalWeekday(i.DateTime, i.zone)
}

// Zone is the session zone the instant evaluates in.
func (i Instant) Zone() *time.Location {
	return i.zone
}

// next rolls the cumulative state forward over one period.
func (i Instant) next(data PeriodData, end time.Time) Instant {
	out := i
	out.TotalDuration += end.Sub(i.DateTime)
	out.DateTime = end

	if data.ChargingDuration != nil {
		out.TotalChargingDuration += data.ChargingDuration.Duration()
	}
	if data.Energy != nil {
		out.TotalEnergy = out.TotalEnergy.Add(*data.Energy)
	}

	return out
}

// New validates a CDR and builds the normalized session.
func New(cdr *ocpi.Cdr, zone *time.Location) (*Session, error) {
	if cdr.Currency == "" {
		return nil, errors.InvalidInput("CDR is missing a currency")
	}
	if !cdr.StartDateTime.Before(cdr.EndDateTime) {
		return nil, errors.InvalidInput("session end does not follow its start")
	}
	if len(cdr.ChargingPeriods) == 0 {
		return nil, errors.InvalidInput("CDR has no charging periods")
	}

	sess := &Session{
		StartDateTime: cdr.StartDateTime.UTC(),
		EndDateTime:   cdr.EndDateTime.UTC(),
		Currency:      cdr.Currency,
		Zone:          zone,
	}

	cursor := Instant{DateTime: sess.StartDateTime, zone: zone}

	for idx, raw := range cdr.ChargingPeriods {
		start := raw.StartDateTime.UTC()
		end := sess.EndDateTime
		if idx+1 < len(cdr.ChargingPeriods) {
			end = cdr.ChargingPeriods[idx+1].StartDateTime.UTC()
		}

		if start.Before(cursor.DateTime) || !start.Before(end) {
			return nil, errors.Newf(errors.KindInvalidInput, "charging period %d is out of order", idx)
		}
		if start.After(cursor.DateTime) {
			// Gap between periods: roll wall time forward without volume.
			cursor = cursor.next(PeriodData{}, start)
		}

		data, err := periodData(idx, raw.Dimensions)
		if err != nil {
			return nil, err
		}

		period := &Period{
			Index: idx,
			Data:  data,
			Start: cursor,
		}
		cursor = cursor.next(data, end)
		period.End = cursor

		sess.Periods = append(sess.Periods, period)
	}

	return sess, nil
}

// periodData maps the reported dimensions of one period. The 2.2.1
// instantaneous CURRENT and POWER values stand in for both their min and
// max counterparts.
func periodData(index int, dims []ocpi.CdrDimension) (PeriodData, error) {
	var data PeriodData

	for _, dim := range dims {
		if dim.Volume.IsNegative() {
			return PeriodData{}, errors.Newf(errors.KindInvalidInput,
				"charging period %d reports a negative %s volume", index, dim.Type)
		}

		switch dim.Type {
		case ocpi.DimensionEnergy:
			kwh := types.KwhFromNumber(dim.Volume)
			data.Energy = &kwh
		case ocpi.DimensionMinCurrent:
			a := types.AmpereFromNumber(dim.Volume)
			data.MinCurrent = &a
		case ocpi.DimensionMaxCurrent:
			a := types.AmpereFromNumber(dim.Volume)
			data.MaxCurrent = &a
		case ocpi.DimensionCurrent:
			a := types.AmpereFromNumber(dim.Volume)
			data.MinCurrent = &a
			data.MaxCurrent = &a
		case ocpi.DimensionMinPower:
			kw := types.KwFromNumber(dim.Volume)
			data.MinPower = &kw
		case ocpi.DimensionMaxPower:
			kw := types.KwFromNumber(dim.Volume)
			data.MaxPower = &kw
		case ocpi.DimensionPower:
			kw := types.KwFromNumber(dim.Volume)
			data.MinPower = &kw
			data.MaxPower = &kw
		case ocpi.DimensionTime:
			h, err := types.HoursFromNumber(dim.Volume)
			if err != nil {
				return PeriodData{}, errors.Wrap(errors.KindInvalidInput, "invalid TIME volume", err)
			}
			data.ChargingDuration = &h
		case ocpi.DimensionParkingTime:
			h, err := types.HoursFromNumber(dim.Volume)
			if err != nil {
				return PeriodData{}, errors.Wrap(errors.KindInvalidInput, "invalid PARKING_TIME volume", err)
			}
			data.ParkingDuration = &h
		case ocpi.DimensionReservationTime:
			h, err := types.HoursFromNumber(dim.Volume)
			if err != nil {
				return PeriodData{}, errors.Wrap(errors.KindInvalidInput, "invalid RESERVATION_TIME volume", err)
			}
			data.ReservationDuration = &h
		default:
			// Forward compatibility: unknown dimension types are ignored.
		}
	}

	return data, nil
}
