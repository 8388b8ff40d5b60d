/*
esi.go - Employee State Insurance calculation

ALGORITHM:
  ESI applies when the employee is flagged applicable AND the period's
  net gross wage is at or below the gross ceiling. The cutoff is a
  strict >: a wage exactly at the ceiling still contributes, one rupee
  above does not. Eligibility is re-evaluated every period on that
  period's wage - an employee can move in and out of ESI month to month.

    employeeESI = round(netGross x employeeRate)
    employerESI = round(netGross x employerRate)
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// ESIResult breaks down one period's ESI contributions.
type ESIResult struct {
	Applicable  bool
	EmployeeESI decimal.Decimal
	EmployerESI decimal.Decimal
}

// CalculateESI computes ESI contributions on the period's net gross wage.
func CalculateESI(netGross decimal.Decimal, emp EmployeeProfile, rules ESIRules) ESIResult {
	if !emp.ESIApplicable {
		return ESIResult{}
	}
	if netGross.GreaterThan(rules.GrossCeiling) {
		return ESIResult{}
	}

	return ESIResult{
		Applicable:  true,
		EmployeeESI: RoundRupee(netGross.Mul(Percent(rules.EmployeeRate))),
		EmployerESI: RoundRupee(netGross.Mul(Percent(rules.EmployerRate))),
	}
}
