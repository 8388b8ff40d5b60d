/*
proration.go - Fractional-period pay for mid-month joiners and leavers

ALGORITHM:
  The period is the calendar month. Effective start is the later of the
  month start and the joining date; effective end is the earlier of the
  month end and the exit date (when set). The proration factor is the
  inclusive effective day count over the month's actual length.

  An employee who joins after the period or exits before it has zero
  effective days. That is a warning, not an error: the run proceeds and
  pays zero, flagged for review.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// ProrationResult describes the payable fraction of a period.
type ProrationResult struct {
	Factor            decimal.Decimal // effective days / total days, in [0, 1]
	EffectiveDays     int
	TotalDaysInPeriod int
	EffectiveStart    Date
	EffectiveEnd      Date
}

// Prorate computes the payable fraction of period for an employee with
// the given joining and (optional) exit dates.
func Prorate(period PayPeriod, joiningDate Date, exitDate *Date) (ProrationResult, ValidationResult) {
	var validation ValidationResult

	start := period.Start()
	end := period.End()
	totalDays := period.TotalDays()

	effectiveStart := MaxDate(start, joiningDate)
	effectiveEnd := end
	if exitDate != nil {
		effectiveEnd = MinDate(end, *exitDate)
	}

	if effectiveStart.After(effectiveEnd) {
		validation.addWarning("employee has no payable days in %s (joined %s, exited %s)",
			period, joiningDate, formatExit(exitDate))
		return ProrationResult{
			Factor:            decimal.Zero,
			EffectiveDays:     0,
			TotalDaysInPeriod: totalDays,
			EffectiveStart:    effectiveStart,
			EffectiveEnd:      effectiveEnd,
		}, validation
	}

	effectiveDays := DaysBetween(effectiveStart, effectiveEnd)
	factor := decimal.NewFromInt(int64(effectiveDays)).
		Div(decimal.NewFromInt(int64(totalDays)))

	return ProrationResult{
		Factor:            factor,
		EffectiveDays:     effectiveDays,
		TotalDaysInPeriod: totalDays,
		EffectiveStart:    effectiveStart,
		EffectiveEnd:      effectiveEnd,
	}, validation
}

func formatExit(exitDate *Date) string {
	if exitDate == nil {
		return "still employed"
	}
	return exitDate.String()
}

// FullPeriod reports whether the employee is payable for the whole month.
func (p ProrationResult) FullPeriod() bool {
	return p.EffectiveDays == p.TotalDaysInPeriod
}
