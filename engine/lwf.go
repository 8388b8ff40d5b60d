/*
lwf.go - Labour Welfare Fund calculation

ALGORITHM:
  Look up the employee's work state. Monthly-frequency states deduct
  the employee amount every period. Half-yearly states deduct only in
  June and December. Yearly states deduct the full amount once, in
  December - the amount is not amortized across months, so eleven
  periods a year deduct nothing.

  An unknown state deducts zero (warning raised by the validator).
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// LWFResult carries both sides of the LWF contribution for the period.
type LWFResult struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// CalculateLWF returns the LWF contribution due in the given period for
// the employee's work state.
func CalculateLWF(period PayPeriod, state StateCode, rules *RuleSet) LWFResult {
	rule, ok := rules.LWFRuleFor(state)
	if !ok {
		return LWFResult{}
	}
	if !rule.DueInMonth(period.Month) {
		return LWFResult{}
	}
	return LWFResult{
		Employee: rule.EmployeeAmount,
		Employer: rule.EmployerAmount,
	}
}
