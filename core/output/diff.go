package output

import (
	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/pricer"
	"ocpi-cost/core/types"
)

// ValidationDiff compares computed totals against the totals the CDR
// reports.
type ValidationDiff struct {
	// Rows are the compared properties in fixed order.
	Rows []DiffRow `json:"rows"`

	// Valid is true when every comparable property matched within
	// tolerance.
	Valid bool `json:"valid"`
}

// DiffRow is one compared property.
type DiffRow struct {
	// Property names the compared value.
	Property string `json:"property"`

	// Computed is the engine's value, empty when it produced none.
	Computed string `json:"computed"`

	// Reported is the CDR's value, empty when the CDR omits it.
	Reported string `json:"reported"`

	// Match is false only when both sides exist and disagree beyond
	// tolerance.
	Match bool `json:"match"`
}

// BuildDiff compares a report to its CDR. Monetary values compare after
// half-to-even rounding at the tolerance scale; volumes compare at OCPI
// scale.
func BuildDiff(report *pricer.Report, cdr *ocpi.Cdr, toleranceScale int32) *ValidationDiff {
	diff := &ValidationDiff{Valid: true}

	add := func(row DiffRow) {
		if !row.Match {
			diff.Valid = false
		}
		diff.Rows = append(diff.Rows, row)
	}

	add(hoursRow("Total Time", report.TotalTime, &cdr.TotalTime))
	add(hoursRow("Total Parking Time", report.TotalParkingTime, cdr.TotalParkingTime))
	add(DiffRow{
		Property: "Total Energy",
		Computed: report.TotalEnergy.String(),
		Reported: cdr.TotalEnergy.String(),
		Match:    report.TotalEnergy.WithScale().Equal(cdr.TotalEnergy.WithScale()),
	})

	add(priceRow("Total Cost", report.TotalCost, &cdr.TotalCost, toleranceScale))
	add(priceRow("Total Energy Cost", report.TotalEnergyCost, cdr.TotalEnergyCost, toleranceScale))
	add(priceRow("Total Time Cost", report.TotalTimeCost, cdr.TotalTimeCost, toleranceScale))
	add(priceRow("Total Parking Cost", report.TotalParkingCost, cdr.TotalParkingCost, toleranceScale))
	add(priceRow("Total Fixed Cost", report.TotalFixedCost, cdr.TotalFixedCost, toleranceScale))
	add(priceRow("Total Reservation Cost", report.TotalReservationCost, cdr.TotalReservationCost, toleranceScale))

	return diff
}

func hoursRow(property string, computed types.HoursDecimal, reported *types.HoursDecimal) DiffRow {
	row := DiffRow{Property: property, Computed: computed.String(), Match: true}
	if reported != nil {
		row.Reported = reported.String()
		row.Match = computed.Hours().WithScale().Equal(reported.Hours().WithScale())
	}
	return row
}

func priceRow(property string, computed, reported *types.Price, toleranceScale int32) DiffRow {
	row := DiffRow{Property: property, Match: true}

	if computed != nil {
		row.Computed = computed.ExclVat.String()
	}
	if reported != nil {
		row.Reported = reported.ExclVat.String()
	}
	if computed == nil || reported == nil {
		return row
	}

	row.Match = moneyMatches(computed.ExclVat, reported.ExclVat, toleranceScale)
	if computed.InclVat != nil && reported.InclVat != nil {
		row.Match = row.Match && moneyMatches(*computed.InclVat, *reported.InclVat, toleranceScale)
	}

	return row
}

func moneyMatches(a, b types.Money, scale int32) bool {
	return a.Number().RoundBank(scale).Equal(b.Number().RoundBank(scale))
}
