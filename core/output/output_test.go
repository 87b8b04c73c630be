package output

import (
	"strings"
	"testing"
	"time"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/pricer"
	"ocpi-cost/core/types"
)

func pricedResult(t *testing.T) *Result {
	t.Helper()

	start := time.Date(2023, time.June, 14, 9, 0, 0, 0, time.UTC)
	cdr := &ocpi.Cdr{
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		Currency:      "EUR",
		TotalCost:     types.Price{ExclVat: types.MoneyFromNumber(types.MustNumber("2.5"))},
		TotalEnergy:   types.KwhFromNumber(types.MustNumber("10")),
		TotalTime:     mustHours(t, "1"),
		ChargingPeriods: []ocpi.ChargingPeriod{
			{StartDateTime: start, Dimensions: []ocpi.CdrDimension{
				{Type: ocpi.DimensionEnergy, Volume: types.MustNumber("10")},
			}},
		},
	}

	tariff := &ocpi.Tariff{
		ID:       "T1",
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{PriceComponents: []ocpi.PriceComponent{
				{Type: ocpi.DimensionTypeEnergy, Price: types.MoneyFromNumber(types.MustNumber("0.25"))},
			}},
		},
	}

	report, err := pricer.Price(cdr, tariff, "Europe/Amsterdam")
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}

	return &Result{
		Report:     report,
		Cdr:        cdr,
		CdrName:    "cdr.json",
		TariffName: "tariff.json",
	}
}

func mustHours(t *testing.T, s string) types.HoursDecimal {
	t.Helper()
	h, err := types.HoursFromNumber(types.MustNumber(s))
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestTableRendersBreakdown(t *testing.T) {
	result := pricedResult(t)

	var b strings.Builder
	formatter := New(FormatTable, true)
	if err := formatter.Render(&b, result); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	for _, want := range []string{"cdr.json", "tariff.json", "Europe/Amsterdam", "10.0000", "2.50 EUR"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRendersReport(t *testing.T) {
	result := pricedResult(t)

	var b strings.Builder
	formatter := New(FormatJSON, true)
	if err := formatter.Render(&b, result); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	for _, want := range []string{`"time_zone": "Europe/Amsterdam"`, `"total_energy": 10`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %q:\n%s", want, out)
		}
	}
}

func TestDiffMatchesWithinTolerance(t *testing.T) {
	result := pricedResult(t)

	diff := BuildDiff(result.Report, result.Cdr, 2)
	if !diff.Valid {
		t.Errorf("computed totals should match the reported ones: %+v", diff.Rows)
	}
}

func TestDiffCatchesDivergence(t *testing.T) {
	result := pricedResult(t)
	result.Cdr.TotalCost = types.Price{ExclVat: types.MoneyFromNumber(types.MustNumber("99"))}

	diff := BuildDiff(result.Report, result.Cdr, 2)
	if diff.Valid {
		t.Error("a diverged total must invalidate the diff")
	}
}

func TestDiffToleratesSubCentNoise(t *testing.T) {
	result := pricedResult(t)
	result.Cdr.TotalCost = types.Price{ExclVat: types.MoneyFromNumber(types.MustNumber("2.501"))}

	diff := BuildDiff(result.Report, result.Cdr, 2)
	if !diff.Valid {
		t.Error("sub-cent differences are within tolerance at scale 2")
	}
}

func TestParseFormat(t *testing.T) {
	if _, ok := ParseFormat("yaml"); ok {
		t.Error("unknown formats must be rejected")
	}
	if format, ok := ParseFormat(""); !ok || format != FormatTable {
		t.Error("the empty format defaults to table")
	}
}
