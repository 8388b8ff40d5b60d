/*
overtime.go - Overtime and shift allowance computation

MODES:
  Flat rate:           configured rupee rates per OT hour and shift day.
  Derived double time: hourly rate from basic at the 26-day / 8-hour
                       factory convention, paid at 2x:
                       (basic x 12) / (26 x 8 x 12) x 2

  Night and weekend shift days are always flat per-day rates; only the
  overtime hourly rate has two modes.

INVARIANT:
  Hours and day counts are clamped at zero before use.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// OvertimeResult breaks down overtime and shift allowances.
type OvertimeResult struct {
	HourlyRate      decimal.Decimal
	OvertimePay     decimal.Decimal
	NightShiftPay   decimal.Decimal
	WeekendShiftPay decimal.Decimal
}

// Total returns the sum of all overtime and shift allowances.
func (o OvertimeResult) Total() decimal.Decimal {
	return o.OvertimePay.Add(o.NightShiftPay).Add(o.WeekendShiftPay)
}

// monthlyWorkHours is the conventional 26 working days x 8 hours divisor
// used to derive an hourly rate from monthly basic.
var monthlyWorkHours = decimal.NewFromInt(26 * 8)

// CalculateOvertime converts overtime hours and shift days into rupee
// allowances under the configured rules.
func CalculateOvertime(att AttendancePeriod, basic decimal.Decimal, rules OvertimeRules) OvertimeResult {
	hours := att.OvertimeHours
	if hours.IsNegative() {
		hours = decimal.Zero
	}
	nightDays := att.NightShiftDays
	if nightDays < 0 {
		nightDays = 0
	}
	weekendDays := att.WeekendShiftDays
	if weekendDays < 0 {
		weekendDays = 0
	}

	var hourly decimal.Decimal
	switch rules.Mode {
	case OvertimeModeFlatRate:
		hourly = rules.HourlyRate
	default:
		// (basic x 12) / (26 x 8 x 12) x 2 == basic / 208 x 2
		hourly = basic.Div(monthlyWorkHours).Mul(decimal.NewFromInt(2))
	}

	return OvertimeResult{
		HourlyRate:      hourly,
		OvertimePay:     hours.Mul(hourly),
		NightShiftPay:   decimal.NewFromInt(int64(nightDays)).Mul(rules.NightShiftRate),
		WeekendShiftPay: decimal.NewFromInt(int64(weekendDays)).Mul(rules.WeekendShiftRate),
	}
}
