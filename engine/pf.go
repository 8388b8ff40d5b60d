/*
pf.go - Employees' Provident Fund calculation

ALGORITHM:
  The PF wage base is basic (plus DA when configured) clamped at the
  wage ceiling - it never exceeds the ceiling no matter how large basic
  is. From that base:

    employeePF  = round(base x employeeRate)
    employerEPS = round(base x epsRate)
    employerEPF = round(base x employerRate) - employerEPS
    vpf         = round(base x vpfPercent)      (voluntary, optional)
    admin       = round(base x adminRate)       (employer-side)

  An employee who has not opted in contributes nothing and attracts no
  employer contribution. The calculator never errors; it only computes.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// PFResult breaks down one period's provident fund contributions.
type PFResult struct {
	WageBase    decimal.Decimal
	EmployeePF  decimal.Decimal
	VPF         decimal.Decimal
	EmployerEPF decimal.Decimal
	EmployerEPS decimal.Decimal
	AdminCharge decimal.Decimal
}

// CalculatePF computes provident fund contributions for the period.
// Prorated basic and DA are used so a half-month hire contributes on a
// half-month wage.
func CalculatePF(basic, da decimal.Decimal, emp EmployeeProfile, rules PFRules) PFResult {
	if !emp.PFOptIn {
		return PFResult{}
	}

	wage := basic
	if rules.IncludeDA {
		wage = wage.Add(da)
	}
	base := MinDecimal(wage, rules.WageCeiling)
	base = ClampNonNegative(base)

	employeePF := RoundRupee(base.Mul(Percent(rules.EmployeeRate)))
	employerEPS := RoundRupee(base.Mul(Percent(rules.EPSRate)))
	employerEPF := RoundRupee(base.Mul(Percent(rules.EmployerRate))).Sub(employerEPS)
	adminCharge := RoundRupee(base.Mul(Percent(rules.AdminRate)))

	var vpf decimal.Decimal
	if emp.VPFPercent.IsPositive() {
		vpf = RoundRupee(base.Mul(Percent(emp.VPFPercent)))
	}

	return PFResult{
		WageBase:    base,
		EmployeePF:  employeePF,
		VPF:         vpf,
		EmployerEPF: employerEPF,
		EmployerEPS: employerEPS,
		AdminCharge: adminCharge,
	}
}
