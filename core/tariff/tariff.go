// Package tariff compiles OCPI tariffs into the internal rule model the
// pricer walks: an ordered list of elements, each a bundle of per-dimension
// price components gated by one compiled restriction. Element order is the
// tie-break: the first active element wins each dimension it defines, and an
// active element that lacks a dimension falls through to later elements for
// that dimension only.
package tariff

import (
	"time"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/restriction"
	"ocpi-cost/core/session"
	"ocpi-cost/core/types"
)

// Tariffs is an ordered list of compiled tariffs.
type Tariffs []*Tariff

// New compiles a list of wire tariffs, preserving order.
func New(tariffs []ocpi.Tariff) Tariffs {
	out := make(Tariffs, 0, len(tariffs))
	for i := range tariffs {
		out = append(out, FromOcpi(&tariffs[i]))
	}
	return out
}

// ActiveAt returns the first tariff active at the given instant along with
// its index.
func (ts Tariffs) ActiveAt(instant time.Time) (int, *Tariff, bool) {
	for i, t := range ts {
		if t.IsActiveAt(instant) {
			return i, t, true
		}
	}
	return 0, nil, false
}

// Tariff is a compiled tariff.
type Tariff struct {
	// ID of the source tariff.
	ID string

	// Currency of the tariff, ISO 4217 code.
	Currency string

	// VatUnknown marks a tariff that came from 2.1.1 input; costs priced
	// under it omit VAT-inclusive amounts.
	VatUnknown bool

	// MinPrice raises the session total to a floor, when present.
	MinPrice *types.Price

	// MaxPrice lowers the session total to a cap, when present.
	MaxPrice *types.Price

	// Elements in document order.
	Elements []*Element

	startDateTime *time.Time
	endDateTime   *time.Time
}

// FromOcpi compiles one wire tariff.
func FromOcpi(t *ocpi.Tariff) *Tariff {
	out := &Tariff{
		ID:            t.ID,
		Currency:      t.Currency,
		VatUnknown:    t.VatUnknown,
		MinPrice:      t.MinPrice,
		MaxPrice:      t.MaxPrice,
		startDateTime: t.StartDateTime,
		endDateTime:   t.EndDateTime,
	}

	for idx, el := range t.Elements {
		element := &Element{
			Index:       idx,
			Restriction: restriction.Compile(el.Restrictions),
		}

		for _, pc := range el.PriceComponents {
			component := &Component{
				ElementIndex: idx,
				Price:        pc.Price,
				Vat:          pc.Vat,
				VatUnknown:   t.VatUnknown,
				StepSize:     pc.StepSize,
				Reservation:  element.Restriction.IsReservationGated(),
			}

			// The first component of each type within an element wins;
			// duplicates are redundant per the linter.
			switch pc.Type {
			case ocpi.DimensionTypeFlat:
				if element.Components.Flat == nil {
					element.Components.Flat = component
				}
			case ocpi.DimensionTypeEnergy:
				if element.Components.Energy == nil {
					element.Components.Energy = component
				}
			case ocpi.DimensionTypeTime:
				if element.Components.Time == nil {
					element.Components.Time = component
				}
			case ocpi.DimensionTypeParkingTime:
				if element.Components.Parking == nil {
					element.Components.Parking = component
				}
			}
		}

		out.Elements = append(out.Elements, element)
	}

	return out
}

// IsActiveAt reports whether the tariff's own validity window contains the
// instant.
func (t *Tariff) IsActiveAt(instant time.Time) bool {
	if t.startDateTime != nil && instant.Before(*t.startDateTime) {
		return false
	}
	if t.endDateTime != nil && !instant.Before(*t.endDateTime) {
		return false
	}
	return true
}

// ActiveComponents scans the elements in order and merges the first winner
// per dimension for the given sub-period.
func (t *Tariff) ActiveComponents(p *session.Period) Components {
	var components Components

	for _, element := range t.Elements {
		if !element.Restriction.Holds(p) {
			continue
		}

		if components.Time == nil {
			components.Time = element.Components.Time
		}
		if components.Parking == nil {
			components.Parking = element.Components.Parking
		}
		if components.Energy == nil {
			components.Energy = element.Components.Energy
		}
		if components.Flat == nil {
			components.Flat = element.Components.Flat
		}

		if components.isComplete() {
			break
		}
	}

	return components
}

// TimeEdges collects every wall-clock edge referenced by any element
// restriction, for interval subdivision.
func (t *Tariff) TimeEdges() []types.OcpiTime {
	var edges []types.OcpiTime
	for _, element := range t.Elements {
		edges = append(edges, element.Restriction.TimeEdges()...)
	}
	return edges
}

// Element is one compiled tariff element.
type Element struct {
	// Index of the element in document order.
	Index int

	// Restriction gates the element; the zero set always holds.
	Restriction restriction.Set

	// Components are the prices the element defines, at most one per
	// dimension.
	Components Components
}

// Components holds the winning price component per dimension. A nil entry
// means no component governs that dimension.
type Components struct {
	Flat    *Component
	Energy  *Component
	Time    *Component
	Parking *Component
}

func (c Components) isComplete() bool {
	return c.Flat != nil && c.Energy != nil && c.Time != nil && c.Parking != nil
}

// Component is a compiled price component.
type Component struct {
	// ElementIndex links back to the defining element.
	ElementIndex int `json:"element_index"`

	// Price per unit excluding VAT.
	Price types.Money `json:"price"`

	// Vat percentage; nil means no VAT applies.
	Vat *types.Vat `json:"vat,omitempty"`

	// VatUnknown marks components from 2.1.1 input.
	VatUnknown bool `json:"-"`

	// StepSize is the minimum billable increment; zero disables rounding.
	StepSize int64 `json:"step_size"`

	// Reservation marks components of reservation-gated elements; their
	// time cost aggregates as reservation cost.
	Reservation bool `json:"-"`
}

// Cost prices a billed volume against this component, applying VAT when
// known.
func (c *Component) Cost(exclVat types.Money) types.Price {
	price := types.Price{ExclVat: exclVat}

	if c.VatUnknown {
		return price
	}

	incl := exclVat
	if c.Vat != nil {
		incl = exclVat.ApplyVat(*c.Vat)
	}
	price.InclVat = &incl

	return price
}
