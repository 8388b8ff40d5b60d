/*
attendance.go - Loss-of-pay resolution

ALGORITHM:
  The per-day rate is (basic + HRA + conveyance) / totalDaysInMonth.
  The divisor is always the calendar month length, never working days -
  the same convention the proration calculator uses, so a full month of
  LOP deducts exactly the components it was computed from.

  If totalDaysInMonth is unavailable the resolver falls back to 30 and
  records a warning; it never divides by zero.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// LOPResult is the outcome of loss-of-pay resolution for one period.
type LOPResult struct {
	LOPDays    int
	AbsentDays int
	PerDayRate decimal.Decimal
	Amount     decimal.Decimal
}

// ResolveLOP translates LOP days into a rupee deduction against the
// given salary structure.
func ResolveLOP(att AttendancePeriod, sal SalaryStructure) (LOPResult, ValidationResult) {
	var validation ValidationResult

	divisor := att.TotalDaysInMonth
	if divisor <= 0 {
		divisor = 30
		validation.addWarning("total days in month unavailable; using 30 for the per-day rate")
	}

	lopDays := att.LOPDays
	if lopDays < 0 {
		lopDays = 0
	}

	dailyBase := sal.Basic.Add(sal.HRA).Add(sal.ConveyanceAllowance)
	perDay := dailyBase.Div(decimal.NewFromInt(int64(divisor)))
	amount := perDay.Mul(decimal.NewFromInt(int64(lopDays)))

	return LOPResult{
		LOPDays:    lopDays,
		AbsentDays: att.AbsentDays(),
		PerDayRate: perDay,
		Amount:     amount,
	}, validation
}
