package explain

import (
	"strings"
	"testing"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/types"
)

func TestExplainComponentsAndRestrictions(t *testing.T) {
	nine, err := types.ParseOcpiTime("21:00")
	if err != nil {
		t.Fatal(err)
	}
	seven, err := types.ParseOcpiTime("07:00")
	if err != nil {
		t.Fatal(err)
	}
	min := types.KwhFromNumber(types.MustNumber("20"))

	tariff := &ocpi.Tariff{
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{
				PriceComponents: []ocpi.PriceComponent{
					{Type: ocpi.DimensionTypeEnergy, Price: types.MoneyFromNumber(types.MustNumber("0.25"))},
					{Type: ocpi.DimensionTypeFlat, Price: types.MoneyFromNumber(types.MustNumber("1"))},
				},
				Restrictions: &ocpi.TariffRestriction{
					StartTime: &nine,
					EndTime:   &seven,
					MinKwh:    &min,
					DayOfWeek: []types.DayOfWeek{types.Saturday, types.Sunday},
				},
			},
			{
				PriceComponents: []ocpi.PriceComponent{
					{Type: ocpi.DimensionTypeTime, Price: types.MoneyFromNumber(types.MustNumber("2"))},
				},
			},
		},
	}

	explanation := Explain(tariff)

	if len(explanation.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(explanation.Elements))
	}

	first := explanation.Elements[0]
	if first.Components.Energy == nil || first.Components.Flat == nil {
		t.Fatal("first element components missing")
	}
	if len(first.Restrictions) != 3 {
		t.Fatalf("expected 3 conditions, got %v", first.Restrictions)
	}

	joined := strings.Join(first.Restrictions, "; ")
	for _, want := range []string{"20", "21:00", "07:00", "SATURDAY"} {
		if !strings.Contains(joined, want) {
			t.Errorf("conditions %q should mention %s", joined, want)
		}
	}

	second := explanation.Elements[1]
	if len(second.Restrictions) != 0 {
		t.Errorf("an unrestricted element explains no conditions, got %v", second.Restrictions)
	}
	if second.Components.Time == nil {
		t.Error("second element TIME component missing")
	}
}
