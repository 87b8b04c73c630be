// Package lint inspects tariffs for authoring mistakes: duplicate
// components, elements that can never bill, dimensions without a fallback
// case, and restrictions better expressed at tariff level.
package lint

import (
	"fmt"
	"sort"

	"ocpi-cost/core/ocpi"
)

// Warning is one linter finding.
type Warning struct {
	// Kind classifies the finding.
	Kind WarningKind `json:"kind"`

	// ElementIndex locates the offending element.
	ElementIndex int `json:"element_index"`

	// ComponentIndex locates the offending component, when the finding is
	// component-scoped.
	ComponentIndex int `json:"component_index,omitempty"`

	// Dimension names the affected dimension, when relevant.
	Dimension ocpi.TariffDimensionType `json:"dimension,omitempty"`
}

// WarningKind classifies linter findings.
type WarningKind string

// Linter finding kinds.
const (
	// ComponentRedundant marks a component shadowed by an earlier
	// component of the same dimension within its element.
	ComponentRedundant WarningKind = "COMPONENT_REDUNDANT"

	// ElementRedundant marks an element that can never bill: it has no
	// components, or every dimension it defines is already covered by an
	// earlier unrestricted element.
	ElementRedundant WarningKind = "ELEMENT_REDUNDANT"

	// DimensionNotExhaustive marks a dimension that is only defined behind
	// restrictions, leaving gaps where consumption bills at zero.
	DimensionNotExhaustive WarningKind = "DIMENSION_NOT_EXHAUSTIVE"

	// UsesDateRestrictions suggests moving element-level date windows to
	// the tariff's start/end_date_time.
	UsesDateRestrictions WarningKind = "USES_DATE_RESTRICTIONS"
)

// String renders the warning as advice.
func (w Warning) String() string {
	switch w.Kind {
	case ComponentRedundant:
		return fmt.Sprintf("component at $.elements[%d].price_components[%d] is redundant, consider removing it",
			w.ElementIndex, w.ComponentIndex)
	case ElementRedundant:
		return fmt.Sprintf("element at $.elements[%d] is redundant, consider removing it", w.ElementIndex)
	case DimensionNotExhaustive:
		return fmt.Sprintf("dimension %s is not exhaustive, consider adding a fallback case", w.Dimension)
	case UsesDateRestrictions:
		return fmt.Sprintf("element at $.elements[%d] uses restrictions.start_date or restrictions.end_date, consider the top level start_date_time and end_date_time",
			w.ElementIndex)
	default:
		return string(w.Kind)
	}
}

var dimensions = []ocpi.TariffDimensionType{
	ocpi.DimensionTypeEnergy,
	ocpi.DimensionTypeFlat,
	ocpi.DimensionTypeTime,
	ocpi.DimensionTypeParkingTime,
}

// Lint produces the warnings for a tariff: per-element findings in document
// order, then shadowed elements, then dimensions without an unrestricted
// fallback.
func Lint(tariff *ocpi.Tariff) []Warning {
	var warnings []Warning

	// Duplicate dimensions within an element are dead: the first
	// component of a type wins during pricing.
	for elementIndex, element := range tariff.Elements {
		if len(element.PriceComponents) == 0 {
			warnings = append(warnings, Warning{Kind: ElementRedundant, ElementIndex: elementIndex})
			continue
		}

		seen := map[ocpi.TariffDimensionType]bool{}
		for componentIndex, component := range element.PriceComponents {
			if seen[component.Type] {
				warnings = append(warnings, Warning{
					Kind:           ComponentRedundant,
					ElementIndex:   elementIndex,
					ComponentIndex: componentIndex,
				})
				continue
			}
			seen[component.Type] = true
		}

		if r := element.Restrictions; r != nil && (r.StartDate != nil || r.EndDate != nil) {
			warnings = append(warnings, Warning{Kind: UsesDateRestrictions, ElementIndex: elementIndex})
		}
	}

	// An unrestricted element ends the search for each dimension it
	// defines; anything defining the same dimension later is dead, and a
	// dimension never reaching an unrestricted case has gaps.
	closed := map[ocpi.TariffDimensionType]bool{}
	defined := map[ocpi.TariffDimensionType]bool{}

	for elementIndex, element := range tariff.Elements {
		unrestricted := element.Restrictions == nil
		shadowed := len(element.PriceComponents) > 0

		for _, component := range element.PriceComponents {
			if !closed[component.Type] {
				shadowed = false
			}
			defined[component.Type] = true
			if unrestricted {
				closed[component.Type] = true
			}
		}

		if shadowed {
			warnings = append(warnings, Warning{Kind: ElementRedundant, ElementIndex: elementIndex})
		}
	}

	for _, dimension := range dimensions {
		if defined[dimension] && !closed[dimension] {
			warnings = append(warnings, Warning{Kind: DimensionNotExhaustive, Dimension: dimension})
		}
	}

	return warnings
}

// Normalize prunes the redundant elements and components Lint finds,
// leaving an equivalent tariff.
func Normalize(tariff *ocpi.Tariff) {
	var removeElements []int
	removeComponents := map[int][]int{}

	for _, warning := range Lint(tariff) {
		switch warning.Kind {
		case ElementRedundant:
			removeElements = append(removeElements, warning.ElementIndex)
		case ComponentRedundant:
			removeComponents[warning.ElementIndex] = append(removeComponents[warning.ElementIndex], warning.ComponentIndex)
		}
	}

	// Remove components in reverse order so indices stay valid.
	for elementIndex, componentIndexes := range removeComponents {
		element := &tariff.Elements[elementIndex]
		for i := len(componentIndexes) - 1; i >= 0; i-- {
			ci := componentIndexes[i]
			element.PriceComponents = append(element.PriceComponents[:ci], element.PriceComponents[ci+1:]...)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(removeElements)))
	for i, ei := range removeElements {
		if i > 0 && removeElements[i-1] == ei {
			continue
		}
		tariff.Elements = append(tariff.Elements[:ei], tariff.Elements[ei+1:]...)
	}

	kept := tariff.Elements[:0]
	for _, element := range tariff.Elements {
		if len(element.PriceComponents) > 0 {
			kept = append(kept, element)
		}
	}
	tariff.Elements = kept
}
