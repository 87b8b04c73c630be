// Package pricer walks a charge session against a tariff and produces the
// monetary breakdown: per-sub-period cost lines, per-dimension subtotals and
// session totals.
//
// A pricing call is purely computational: it owns a private ledger for its
// lifetime, performs no I/O, and treats its inputs as read-only snapshots.
// Calls for different sessions may run in parallel without coordination.
package pricer

import (
	"time"

	"go.uber.org/zap"

	"ocpi-cost/core/calendar"
	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/session"
	"ocpi-cost/core/tariff"
	"ocpi-cost/core/types"
	"ocpi-cost/internal/errors"
	"ocpi-cost/internal/logging"
)

// Price computes the breakdown of a CDR against an explicit tariff. The
// zone is an IANA identifier; empty selects country detection from the CDR,
// then the default zone.
func Price(cdr *ocpi.Cdr, t *ocpi.Tariff, zone string) (*Report, error) {
	loc, zoneName, err := resolveZone(cdr, zone)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(cdr, loc)
	if err != nil {
		return nil, err
	}

	compiled := tariff.FromOcpi(t)
	if compiled.Currency != "" && compiled.Currency != sess.Currency {
		return nil, errors.Newf(errors.KindInvalidInput,
			"tariff currency %s does not match CDR currency %s", compiled.Currency, sess.Currency)
	}
	if !compiled.IsActiveAt(sess.StartDateTime) {
		return nil, errors.NoMatchingTariff()
	}

	return buildReport(sess, compiled, 0, zoneName)
}

// PriceSession computes the breakdown of a CDR against the tariffs it
// embeds. The first tariff that prices the session without error wins.
func PriceSession(cdr *ocpi.Cdr, zone string) (*Report, error) {
	loc, zoneName, err := resolveZone(cdr, zone)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(cdr, loc)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for index := range cdr.Tariffs {
		compiled := tariff.FromOcpi(&cdr.Tariffs[index])
		if !compiled.IsActiveAt(sess.StartDateTime) {
			continue
		}
		if compiled.Currency != "" && compiled.Currency != sess.Currency {
			lastErr = errors.Newf(errors.KindInvalidInput,
				"tariff currency %s does not match CDR currency %s", compiled.Currency, sess.Currency)
			continue
		}

		report, err := buildReport(sess, compiled, index, zoneName)
		if err == nil {
			return report, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.NoMatchingTariff()
}

// resolveZone picks the zone to evaluate wall-clock restrictions in: the
// explicit identifier when given, otherwise a best-effort detection from the
// CDR's country code, otherwise the default.
func resolveZone(cdr *ocpi.Cdr, zone string) (*time.Location, string, error) {
	name := zone
	if name == "" {
		if detected, ok := calendar.ZoneFromCountry(cdr.CountryCode); ok {
			name = detected
		} else {
			name = calendar.DefaultZone
		}
	}

	loc, err := calendar.LoadZone(name)
	if err != nil {
		return nil, "", err
	}
	return loc, name, nil
}

// volumes are the per-dimension amounts one sub-period consumed.
type volumes struct {
	energy      *types.Kwh
	time        *types.HoursDecimal
	parking     *types.HoursDecimal
	reservation *types.HoursDecimal
}

// ledger is the mutable state of one pricing call. It lives only for the
// duration of that call.
type ledger struct {
	flatApplied bool

	totalEnergy          types.Kwh
	totalChargingTime    types.HoursDecimal
	totalParkingTime     types.HoursDecimal
	totalReservationTime types.HoursDecimal

	warnings []string
}

func buildReport(sess *session.Session, tf *tariff.Tariff, tariffIndex int, zoneName string) (*Report, error) {
	edges := tf.TimeEdges()
	led := &ledger{}
	step := &stepSize{}

	var periods []*PeriodReport

	for _, period := range sess.Periods {
		for _, sub := range period.Subdivide(edges) {
			components := tf.ActiveComponents(sub)
			vols := subVolumes(sub)

			step.update(len(periods), components, vols)
			periods = append(periods, led.price(components, sub, vols))
		}
	}

	logging.Debug("priced charge session",
		zap.String("tariff_id", tf.ID),
		zap.Int("periods", len(sess.Periods)),
		zap.Int("sub_periods", len(periods)),
		zap.String("zone", zoneName))

	billedChargingTime, err := step.applyTime(periods, led.totalChargingTime)
	if err != nil {
		return nil, err
	}
	billedEnergy, err := step.applyEnergy(periods, led.totalEnergy)
	if err != nil {
		return nil, err
	}
	billedParkingTime, err := step.applyParking(periods, led.totalParkingTime)
	if err != nil {
		return nil, err
	}

	if len(sess.Periods) > 0 {
		final := sess.Periods[len(sess.Periods)-1].End
		if !final.TotalEnergy.Equal(led.totalEnergy) {
			return nil, errors.Inconsistency("cumulative session energy disagrees with period sums")
		}
	}

	report := &Report{
		TimeZone:             zoneName,
		Currency:             sess.Currency,
		TariffIndex:          tariffIndex,
		TariffID:             tf.ID,
		StartDateTime:        sess.StartDateTime,
		EndDateTime:          sess.EndDateTime,
		Periods:              periods,
		TotalTime:            types.HoursFromDuration(sess.EndDateTime.Sub(sess.StartDateTime)),
		TotalChargingTime:    led.totalChargingTime,
		BilledChargingTime:   billedChargingTime,
		TotalParkingTime:     led.totalParkingTime,
		BilledParkingTime:    billedParkingTime,
		TotalEnergy:          led.totalEnergy,
		BilledEnergy:         billedEnergy,
		TotalReservationTime: led.totalReservationTime,
		Warnings:             led.warnings,
	}

	for _, p := range periods {
		report.TotalEnergyCost = sumPrices(report.TotalEnergyCost, p.Dimensions.Energy.Cost())
		report.TotalTimeCost = sumPrices(report.TotalTimeCost, p.Dimensions.Time.Cost())
		report.TotalParkingCost = sumPrices(report.TotalParkingCost, p.Dimensions.Parking.Cost())
		report.TotalFixedCost = sumPrices(report.TotalFixedCost, p.Dimensions.Flat.Cost())
		report.TotalReservationCost = sumPrices(report.TotalReservationCost, p.Dimensions.Reservation.Cost())
	}

	report.TotalCost = sumPrices(
		report.TotalTimeCost,
		report.TotalParkingCost,
		report.TotalFixedCost,
		report.TotalEnergyCost,
		report.TotalReservationCost,
	)
	report.TotalCost = clampTotal(report.TotalCost, tf.MinPrice, tf.MaxPrice)

	if saturated(report) {
		return nil, errors.Overflow("session totals")
	}

	return report, nil
}

// subVolumes derives the billable amounts of one sub-period. Charging time
// is the reported TIME volume; a period that delivers energy without
// reporting TIME counts its wall-clock duration as charging time.
func subVolumes(sub *session.Period) volumes {
	vols := volumes{
		energy:      sub.Data.Energy,
		time:        sub.Data.ChargingDuration,
		parking:     sub.Data.ParkingDuration,
		reservation: sub.Data.ReservationDuration,
	}

	if vols.time == nil && sub.Data.Energy != nil && sub.Data.Energy.Number().IsPositive() {
		wall := types.HoursFromDuration(sub.End.DateTime.Sub(sub.Start.DateTime))
		vols.time = &wall
	}

	return vols
}

// price builds the cost lines of one sub-period and rolls the ledger
// forward.
func (l *ledger) price(components tariff.Components, sub *session.Period, vols volumes) *PeriodReport {
	report := &PeriodReport{
		PeriodIndex:   sub.Index,
		StartDateTime: sub.Start.DateTime,
		EndDateTime:   sub.End.DateTime,
	}

	// FLAT is a session-level one-shot: the first sub-period where an
	// active element carries a FLAT component bills it, every later
	// activation is ignored.
	if components.Flat != nil && !l.flatApplied {
		l.flatApplied = true
		unit := FlatUnit{}
		report.Dimensions.Flat = newDimensionReport(components.Flat, &unit)
	}

	report.Dimensions.Energy = newDimensionReport(components.Energy, vols.energy)
	report.Dimensions.Time = newDimensionReport(components.Time, vols.time)
	report.Dimensions.Parking = newDimensionReport(components.Parking, vols.parking)
	reservation := components.Time
	if reservation != nil && !reservation.Reservation {
		reservation = nil
	}
	report.Dimensions.Reservation = newDimensionReport(reservation, vols.reservation)

	l.flagGaps(report, vols, sub)

	if vols.energy != nil {
		l.totalEnergy = l.totalEnergy.Add(*vols.energy)
	}
	if vols.time != nil {
		l.totalChargingTime = l.totalChargingTime.Add(*vols.time)
	}
	if vols.parking != nil {
		l.totalParkingTime = l.totalParkingTime.Add(*vols.parking)
	}
	if vols.reservation != nil {
		l.totalReservationTime = l.totalReservationTime.Add(*vols.reservation)
	}

	return report
}

// flagGaps marks consumed volume no tariff element priced. Gaps bill at
// zero and surface as warnings, not errors, so gap tariffs stay usable.
func (l *ledger) flagGaps(report *PeriodReport, vols volumes, sub *session.Period) {
	warn := func(dimension string) {
		msg := "period " + report.StartDateTime.Format("2006-01-02T15:04:05Z07:00") +
			": " + dimension + " volume has no matching tariff element, billed at zero"
		l.warnings = append(l.warnings, msg)
		logging.Warn("unpriced volume",
			zap.String("dimension", dimension),
			zap.Time("sub_period_start", report.StartDateTime))
	}

	if vols.energy != nil && vols.energy.Number().IsPositive() && report.Dimensions.Energy.Price == nil {
		report.Dimensions.Energy.Gap = true
		warn("ENERGY")
	}
	if vols.time != nil && !vols.time.IsZero() && report.Dimensions.Time.Price == nil {
		report.Dimensions.Time.Gap = true
		warn("TIME")
	}
	if vols.parking != nil && !vols.parking.IsZero() && report.Dimensions.Parking.Price == nil {
		report.Dimensions.Parking.Gap = true
		warn("PARKING_TIME")
	}
	if vols.reservation != nil && !vols.reservation.IsZero() && report.Dimensions.Reservation.Price == nil {
		report.Dimensions.Reservation.Gap = true
		warn("RESERVATION_TIME")
	}
}

// clampTotal applies the tariff's optional min/max price to the grand
// total. Each bound clamps the VAT-exclusive and, when known, VAT-inclusive
// amount independently.
func clampTotal(total *types.Price, minPrice, maxPrice *types.Price) *types.Price {
	if total == nil {
		return nil
	}

	clamped := *total
	if minPrice != nil {
		if clamped.ExclVat.Cmp(minPrice.ExclVat) < 0 {
			clamped.ExclVat = minPrice.ExclVat
		}
		if clamped.InclVat != nil && minPrice.InclVat != nil && clamped.InclVat.Cmp(*minPrice.InclVat) < 0 {
			clamped.InclVat = minPrice.InclVat
		}
	}
	if maxPrice != nil {
		if clamped.ExclVat.Cmp(maxPrice.ExclVat) > 0 {
			clamped.ExclVat = maxPrice.ExclVat
		}
		if clamped.InclVat != nil && maxPrice.InclVat != nil && clamped.InclVat.Cmp(*maxPrice.InclVat) > 0 {
			clamped.InclVat = maxPrice.InclVat
		}
	}

	return &clamped
}

// saturated reports whether any session total clamped at the arithmetic
// bound.
func saturated(report *Report) bool {
	for _, price := range []*types.Price{
		report.TotalCost,
		report.TotalTimeCost,
		report.TotalParkingCost,
		report.TotalEnergyCost,
		report.TotalFixedCost,
		report.TotalReservationCost,
	} {
		if price == nil {
			continue
		}
		if price.ExclVat.IsSaturated() {
			return true
		}
		if price.InclVat != nil && price.InclVat.IsSaturated() {
			return true
		}
	}
	return false
}
