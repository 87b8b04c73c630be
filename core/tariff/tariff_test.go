package tariff

import (
	"testing"
	"time"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/session"
	"ocpi-cost/core/types"
)

func component(dimType ocpi.TariffDimensionType, price string) ocpi.PriceComponent {
	return ocpi.PriceComponent{
		Type:  dimType,
		Price: types.MoneyFromNumber(types.MustNumber(price)),
	}
}

// chargingPeriod builds a one-period session and returns that period.
func chargingPeriod(t *testing.T, energy string) *session.Period {
	t.Helper()

	start := time.Date(2023, time.June, 14, 9, 0, 0, 0, time.UTC)
	cdr := &ocpi.Cdr{
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		Currency:      "EUR",
		ChargingPeriods: []ocpi.ChargingPeriod{
			{
				StartDateTime: start,
				Dimensions: []ocpi.CdrDimension{
					{Type: ocpi.DimensionEnergy, Volume: types.MustNumber(energy)},
				},
			},
		},
	}

	sess, err := session.New(cdr, time.UTC)
	if err != nil {
		t.Fatalf("building session: %v", err)
	}
	return sess.Periods[0]
}

func TestFirstMatchingElementWinsPerDimension(t *testing.T) {
	five := types.KwhFromNumber(types.MustNumber("5"))

	tariff := FromOcpi(&ocpi.Tariff{
		ID:       "T1",
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{
				// Only active above 5 kWh; defines ENERGY.
				PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.10")},
				Restrictions:    &ocpi.TariffRestriction{MinKwh: &five},
			},
			{
				// Fallback defining ENERGY and TIME.
				PriceComponents: []ocpi.PriceComponent{
					component(ocpi.DimensionTypeEnergy, "0.30"),
					component(ocpi.DimensionTypeTime, "2.00"),
				},
			},
		},
	})

	period := chargingPeriod(t, "3")

	components := tariff.ActiveComponents(period)
	if components.Energy == nil || components.Energy.ElementIndex != 1 {
		t.Error("below the threshold the fallback element should win ENERGY")
	}
	if components.Time == nil || components.Time.ElementIndex != 1 {
		t.Error("the fallback element defines TIME")
	}
}

func TestActiveElementWithoutDimensionDoesNotBlock(t *testing.T) {
	tariff := FromOcpi(&ocpi.Tariff{
		ID:       "T2",
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{
				// Always active but defines only FLAT; ENERGY must fall
				// through to the next element.
				PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeFlat, "1.00")},
			},
			{
				PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.25")},
			},
		},
	})

	components := tariff.ActiveComponents(chargingPeriod(t, "3"))
	if components.Flat == nil || components.Flat.ElementIndex != 0 {
		t.Error("the first element should win FLAT")
	}
	if components.Energy == nil || components.Energy.ElementIndex != 1 {
		t.Error("ENERGY should fall through to the second element")
	}
}

func TestDuplicateComponentWithinElementIsDead(t *testing.T) {
	tariff := FromOcpi(&ocpi.Tariff{
		ID:       "T3",
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{
				PriceComponents: []ocpi.PriceComponent{
					component(ocpi.DimensionTypeEnergy, "0.25"),
					component(ocpi.DimensionTypeEnergy, "0.99"),
				},
			},
		},
	})

	components := tariff.ActiveComponents(chargingPeriod(t, "3"))
	if components.Energy == nil {
		t.Fatal("expected an ENERGY component")
	}
	if !components.Energy.Price.Equal(types.MoneyFromNumber(types.MustNumber("0.25"))) {
		t.Errorf("the first component of a type should win, got %s", components.Energy.Price)
	}
}

func TestTariffValidityWindow(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)

	tariffs := New([]ocpi.Tariff{
		{
			ID:            "expired",
			Currency:      "EUR",
			EndDateTime:   &start,
			Elements:      []ocpi.TariffElement{{PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.10")}}},
		},
		{
			ID:            "current",
			Currency:      "EUR",
			StartDateTime: &start,
			EndDateTime:   &end,
			Elements:      []ocpi.TariffElement{{PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.20")}}},
		},
	})

	index, tariff, ok := tariffs.ActiveAt(time.Date(2023, time.June, 14, 9, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected an active tariff")
	}
	if index != 1 || tariff.ID != "current" {
		t.Errorf("active tariff = %d (%s), want 1 (current)", index, tariff.ID)
	}

	if _, _, ok := tariffs.ActiveAt(time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("no tariff should be active after both windows")
	}

	// The end bound is exclusive.
	if tariffs[1].IsActiveAt(end) {
		t.Error("a tariff is inactive at its own end instant")
	}
	if !tariffs[1].IsActiveAt(start) {
		t.Error("a tariff is active at its own start instant")
	}
}

func TestVatHandling(t *testing.T) {
	vat := types.VatFromNumber(types.MustNumber("21"))

	withVat := &Component{Price: types.MoneyFromNumber(types.MustNumber("10")), Vat: &vat}
	price := withVat.Cost(types.MoneyFromNumber(types.MustNumber("10")))
	if price.InclVat == nil || !price.InclVat.Equal(types.MoneyFromNumber(types.MustNumber("12.1"))) {
		t.Errorf("VAT 21%% on 10 = %v", price.InclVat)
	}

	noVat := &Component{Price: types.MoneyFromNumber(types.MustNumber("10"))}
	price = noVat.Cost(types.MoneyFromNumber(types.MustNumber("10")))
	if price.InclVat == nil || !price.InclVat.Equal(price.ExclVat) {
		t.Error("without VAT the inclusive amount equals the exclusive one")
	}

	unknown := &Component{Price: types.MoneyFromNumber(types.MustNumber("10")), VatUnknown: true}
	price = unknown.Cost(types.MoneyFromNumber(types.MustNumber("10")))
	if price.InclVat != nil {
		t.Error("unknown VAT must omit the inclusive amount")
	}
}

func TestTimeEdges(t *testing.T) {
	nine, err := types.ParseOcpiTime("09:00")
	if err != nil {
		t.Fatal(err)
	}
	five, err := types.ParseOcpiTime("17:00")
	if err != nil {
		t.Fatal(err)
	}

	tariff := FromOcpi(&ocpi.Tariff{
		ID:       "T4",
		Currency: "EUR",
		Elements: []ocpi.TariffElement{
			{
				PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.30")},
				Restrictions:    &ocpi.TariffRestriction{StartTime: &nine, EndTime: &five},
			},
			{
				PriceComponents: []ocpi.PriceComponent{component(ocpi.DimensionTypeEnergy, "0.20")},
			},
		},
	})

	edges := tariff.TimeEdges()
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
}
