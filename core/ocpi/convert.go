package ocpi

import (
	"ocpi-cost/core/ocpi/v211"
	"ocpi-cost/core/types"
	"ocpi-cost/internal/errors"
)

// FromV211Cdr up-converts a 2.1.1 CDR. The bare reported total becomes a
// price with an unknown VAT-inclusive part.
func FromV211Cdr(c *v211.Cdr) *Cdr {
	out := &Cdr{
		StartDateTime:    c.StartDateTime,
		EndDateTime:      c.StopDateTime,
		Currency:         c.Currency,
		TotalCost:        types.Price{ExclVat: c.TotalCost},
		TotalEnergy:      c.TotalEnergy,
		TotalTime:        c.TotalTime,
		TotalParkingTime: c.TotalParkingTime,
		LastUpdated:      c.LastUpdated,
	}

	for i := range c.Tariffs {
		out.Tariffs = append(out.Tariffs, *FromV211Tariff(&c.Tariffs[i]))
	}

	for _, p := range c.ChargingPeriods {
		period := ChargingPeriod{StartDateTime: p.StartDateTime}
		for _, d := range p.Dimensions {
			period.Dimensions = append(period.Dimensions, CdrDimension{
				Type:   CdrDimensionType(d.Type),
				Volume: d.Volume,
			})
		}
		out.ChargingPeriods = append(out.ChargingPeriods, period)
	}

	return out
}

// FromV211Tariff up-converts a 2.1.1 tariff. Components are marked
// VAT-unknown; min/max price don't exist at 2.1.1 and convert to absent.
func FromV211Tariff(t *v211.Tariff) *Tariff {
	out := &Tariff{
		ID:            t.ID,
		Currency:      t.Currency,
		StartDateTime: t.StartDateTime,
		EndDateTime:   t.EndDateTime,
		LastUpdated:   t.LastUpdated,
		VatUnknown:    true,
	}

	for _, e := range t.Elements {
		element := TariffElement{}
		for _, pc := range e.PriceComponents {
			element.PriceComponents = append(element.PriceComponents, PriceComponent{
				Type:     TariffDimensionType(pc.Type),
				Price:    pc.Price,
				StepSize: pc.StepSize,
			})
		}
		if r := e.Restrictions; r != nil {
			element.Restrictions = &TariffRestriction{
				StartTime:   r.StartTime,
				EndTime:     r.EndTime,
				StartDate:   r.StartDate,
				EndDate:     r.EndDate,
				MinKwh:      r.MinKwh,
				MaxKwh:      r.MaxKwh,
				MinPower:    r.MinPower,
				MaxPower:    r.MaxPower,
				MinDuration: r.MinDuration,
				MaxDuration: r.MaxDuration,
				DayOfWeek:   r.DayOfWeek,
			}
		}
		out.Elements = append(out.Elements, element)
	}

	return out
}

func decodeCdrV211(data []byte) (*Cdr, error) {
	var cdr v211.Cdr
	if err := strictUnmarshal(data, &cdr); err != nil {
		return nil, errors.Wrap(errors.KindParsing, "decoding 2.1.1 CDR", err)
	}
	if cdr.StopDateTime.IsZero() {
		return nil, errors.New(errors.KindParsing, "2.1.1 CDR is missing stop_date_time")
	}
	return FromV211Cdr(&cdr), nil
}

func decodeTariffV211(data []byte) (*Tariff, error) {
	var tariff v211.Tariff
	if err := strictUnmarshal(data, &tariff); err != nil {
		return nil, errors.Wrap(errors.KindParsing, "decoding 2.1.1 tariff", err)
	}
	if len(tariff.Elements) == 0 {
		return nil, errors.New(errors.KindParsing, "2.1.1 tariff has no elements")
	}
	return FromV211Tariff(&tariff), nil
}
