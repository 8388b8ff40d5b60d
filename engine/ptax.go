/*
ptax.go - Professional Tax (state slab lookup)

ALGORITHM:
  Look up the employee's work state in the rule set's PT table. The
  table is an ordered list of non-overlapping [min, max] monthly-wage
  bands, each with a flat monthly tax; a zero max marks the unbounded
  top band. The tax comes from the first band whose max covers the
  period's net gross wage, so each band effectively spans
  (previous max, max]. The published bounds are whole rupees, but LOP
  proration produces fractional wages; a wage between two integer
  bounds belongs to the upper band, never to no band.

  An unknown state deducts zero. The validator has already recorded the
  warning; this calculator just computes.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// CalculatePT returns the flat monthly Professional Tax for the wage
// and state, or zero when the state has no table.
func CalculatePT(netGross decimal.Decimal, state StateCode, rules *RuleSet) decimal.Decimal {
	slabs, ok := rules.PTSlabsFor(state)
	if !ok {
		return decimal.Zero
	}

	for _, slab := range slabs {
		if slab.Max.IsZero() || netGross.LessThanOrEqual(slab.Max) {
			return slab.Tax
		}
	}
	return decimal.Zero
}
