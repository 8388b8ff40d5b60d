/*
earnings.go - Gross and net-gross earnings aggregation

CONTRACT:
  Fixed components (basic, HRA, DA, allowances) are prorated by the
  proration factor. Overtime and variable pay are added as-is. LOP is
  subtracted last:

    gross    = prorated components + overtime + variable pay
    netGross = gross - LOP amount

  Gross earnings can never go negative: if the arithmetic would produce
  one, the aggregator floors at zero and records a warning. netGross is
  the wage base handed to every statutory deduction calculator.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// AggregateEarnings combines prorated salary, overtime, variable pay,
// and the LOP deduction into the earnings breakdown.
func AggregateEarnings(
	sal SalaryStructure,
	proration ProrationResult,
	overtime OvertimeResult,
	variable VariablePay,
	lop LOPResult,
) (EarningsBreakdown, ValidationResult) {
	var validation ValidationResult

	factor := proration.Factor
	earnings := EarningsBreakdown{
		Basic:           sal.Basic.Mul(factor),
		HRA:             sal.HRA.Mul(factor),
		DA:              sal.DA.Mul(factor),
		Allowances:      sal.TotalAllowances().Mul(factor),
		OvertimePay:     overtime.OvertimePay,
		NightShiftPay:   overtime.NightShiftPay,
		WeekendShiftPay: overtime.WeekendShiftPay,
		Bonus:           variable.Bonus,
		Incentives:      variable.Incentives,
		Arrears:         variable.Arrears,
		Reimbursements:  variable.Reimbursements,
	}

	gross := earnings.Basic.
		Add(earnings.HRA).
		Add(earnings.DA).
		Add(earnings.Allowances).
		Add(overtime.Total()).
		Add(variable.Total())

	if gross.IsNegative() {
		validation.addWarning("gross earnings computed negative (%s); floored at zero", gross.StringFixed(2))
		gross = decimal.Zero
	}

	lopAmount := lop.Amount
	if lopAmount.GreaterThan(gross) {
		validation.addWarning("LOP deduction (%s) exceeds gross earnings (%s)",
			lopAmount.StringFixed(2), gross.StringFixed(2))
	}

	netGross := ClampNonNegative(gross.Sub(lopAmount))

	earnings.GrossEarnings = gross
	earnings.LOPDeduction = lopAmount
	earnings.NetGrossEarnings = netGross

	return earnings, validation
}
