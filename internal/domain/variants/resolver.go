// internal/domain/variants/resolver.go

// Package variants resolves a shopper's in-progress attribute
// selection against a product's variant list.
//
// The resolver is a pure query engine: it never mutates the product or
// its variants, and it runs a linear scan over the variant list on
// every call, which is cheap at catalog sizes. It answers two
// questions per call: which exact variant (if any) matches the current
// selection, and which attribute values are still worth offering.
package variants

import (
	"errors"

	"github.com/dalemusser/vitrine/internal/domain/models"
)

// ErrAmbiguousVariant reports a data-integrity violation: more than
// one active variant matches a complete attribute selection. The
// resolver surfaces it instead of silently picking one so operators
// can see the inconsistency.
var ErrAmbiguousVariant = errors.New("multiple active variants match the same attribute combination")

// State is the stage of the variant-selection state machine.
type State string

const (
	// StateEmpty means no attribute has been selected yet.
	StateEmpty State = "empty"
	// StatePartial means some but not all attributes are selected.
	StatePartial State = "partial"
	// StateResolved means the selection is complete and matches an
	// active, in-stock variant.
	StateResolved State = "resolved"
	// StateUnavailable means the selection is complete but no active,
	// in-stock variant carries that combination.
	StateUnavailable State = "unavailable"
)

// Resolution is the full answer for one selection snapshot.
type Resolution struct {
	State State `json:"state"`

	// Variant, Price, and Stock are set only when State is StateResolved.
	// Price is the variant's effective price (its own price if set,
	// else the product's base price).
	Variant *models.Variant `json:"variant,omitempty"`
	Price   float64         `json:"price,omitempty"`
	Stock   int             `json:"stock,omitempty"`

	// Options reports, per attribute and candidate value, whether the
	// value is still selectable. Attributes appear in definition order,
	// values in their declared order.
	Options []AttributeOptions `json:"options"`
}

// AttributeOptions is the availability report for one attribute.
type AttributeOptions struct {
	Name   string               `json:"name"`
	Values []OptionAvailability `json:"values"`
}

// OptionAvailability is one candidate value of an attribute.
//
// Available considers the single attribute/value pair in isolation:
// it is true when at least one active, in-stock variant carries the
// value, regardless of the other currently-selected attributes. A
// value can therefore show as available even though the full
// combination with the current selection is not; the complete
// selection reveals that through StateUnavailable.
type OptionAvailability struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// Resolve evaluates a selection against a product's attribute
// definitions and variants. basePrice is the product's own price,
// used when the matched variant has no price of its own.
//
// A "no match" outcome is a normal resolver state, not an error; the
// only error condition is ErrAmbiguousVariant.
func Resolve(defs []models.AttributeDefinition, vars []models.Variant, basePrice float64, sel Selection) (Resolution, error) {
	// Callers building selections from raw request maps may carry
	// blank entries; a blank value means the attribute is unselected,
	// same as Selection.Set.
	sel = sel.withoutBlanks()

	res := Resolution{
		State:   selectionState(defs, sel),
		Options: availability(defs, vars, sel),
	}
	if res.State != StateUnavailable {
		// Empty or partial selection: nothing to match yet.
		return res, nil
	}

	// Selection is complete; look for the exact active match.
	var match *models.Variant
	for i := range vars {
		v := &vars[i]
		if !v.IsActive || !combinationMatches(defs, v.AttributeCombination, sel) {
			continue
		}
		if match != nil {
			return Resolution{}, ErrAmbiguousVariant
		}
		match = v
	}

	if match != nil && match.IsAvailable() {
		res.State = StateResolved
		res.Variant = match
		res.Price = match.EffectivePrice(basePrice)
		res.Stock = match.StockQuantity
	}
	return res, nil
}

// selectionState classifies the selection as empty, partial, or
// complete. A complete selection is provisionally StateUnavailable
// until a matching variant upgrades it to StateResolved.
func selectionState(defs []models.AttributeDefinition, sel Selection) State {
	if len(sel) == 0 {
		return StateEmpty
	}
	if !isComplete(defs, sel) {
		return StatePartial
	}
	return StateUnavailable
}

// isComplete reports whether the selection holds exactly one value for
// every defined attribute. Extra keys (attributes not declared for
// this product) make the selection incomplete rather than matchable.
func isComplete(defs []models.AttributeDefinition, sel Selection) bool {
	if len(sel) != len(defs) {
		return false
	}
	for _, def := range defs {
		if _, ok := sel[def.Name]; !ok {
			return false
		}
	}
	return true
}

// combinationMatches reports whether a variant's combination equals
// the selection on every defined attribute.
func combinationMatches(defs []models.AttributeDefinition, combo map[string]string, sel Selection) bool {
	for _, def := range defs {
		if combo[def.Name] != sel[def.Name] {
			return false
		}
	}
	return true
}

// availability computes the per-value option report. Each value is
// checked in isolation: it counts as available when any active,
// in-stock variant carries it, independent of the rest of the
// selection.
func availability(defs []models.AttributeDefinition, vars []models.Variant, sel Selection) []AttributeOptions {
	opts := make([]AttributeOptions, 0, len(defs))
	for _, def := range defs {
		attr := AttributeOptions{
			Name:   def.Name,
			Values: make([]OptionAvailability, 0, len(def.Values)),
		}
		for _, val := range def.Values {
			attr.Values = append(attr.Values, OptionAvailability{
				Value:     val,
				Available: valueHasStock(vars, def.Name, val),
				Selected:  sel[def.Name] == val,
			})
		}
		opts = append(opts, attr)
	}
	return opts
}

func valueHasStock(vars []models.Variant, name, value string) bool {
	for i := range vars {
		if vars[i].IsAvailable() && vars[i].AttributeCombination[name] == value {
			return true
		}
	}
	return false
}
