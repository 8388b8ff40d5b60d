package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

// approxEqual compares decimals to a tenth of a paisa; per-day rates are
// non-terminating divisions.
func approxEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	diff := want.Sub(got).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.001)),
		"want %s, got %s (diff %s) %v", want, got, diff, msgAndArgs)
}

func TestResolveLOP_StandardMonth(t *testing.T) {
	// GIVEN: basic 50000, HRA 20000, conveyance 1600 over a 30-day month
	// WHEN: 6 days of loss of pay
	// THEN: amount = (71600 / 30) x 6 = 14320

	att := engine.AttendancePeriod{TotalDaysInMonth: 30, WorkingDays: 26, PresentDays: 20, LOPDays: 6}
	sal := engine.SalaryStructure{
		Basic:               engine.RupeesInt(50000),
		HRA:                 engine.RupeesInt(20000),
		ConveyanceAllowance: engine.RupeesInt(1600),
	}

	lop, validation := engine.ResolveLOP(att, sal)

	assert.Equal(t, 6, lop.LOPDays)
	assert.Equal(t, 6, lop.AbsentDays)
	approxEqual(t, engine.Rupees(2386.6667), lop.PerDayRate)
	approxEqual(t, engine.RupeesInt(14320), lop.Amount)
	assert.Empty(t, validation.Warnings)
}

func TestResolveLOP_ZeroDays_ZeroAmount(t *testing.T) {
	att := engine.AttendancePeriod{TotalDaysInMonth: 31, WorkingDays: 26, PresentDays: 26}
	sal := engine.SalaryStructure{Basic: engine.RupeesInt(50000)}

	lop, _ := engine.ResolveLOP(att, sal)
	assert.True(t, lop.Amount.IsZero())
}

func TestResolveLOP_MissingMonthLength_FallsBackTo30(t *testing.T) {
	// GIVEN: totalDaysInMonth was never supplied
	// THEN: Divisor falls back to 30 and a warning is recorded

	att := engine.AttendancePeriod{WorkingDays: 26, PresentDays: 25, LOPDays: 1}
	sal := engine.SalaryStructure{Basic: engine.RupeesInt(30000)}

	lop, validation := engine.ResolveLOP(att, sal)

	approxEqual(t, engine.RupeesInt(1000), lop.Amount)
	assert.NotEmpty(t, validation.Warnings)
}

func TestResolveLOP_NegativeDays_Clamped(t *testing.T) {
	att := engine.AttendancePeriod{TotalDaysInMonth: 30, WorkingDays: 26, PresentDays: 26, LOPDays: -3}
	sal := engine.SalaryStructure{Basic: engine.RupeesInt(50000)}

	lop, _ := engine.ResolveLOP(att, sal)

	assert.Equal(t, 0, lop.LOPDays)
	assert.True(t, lop.Amount.IsZero())
}

func TestResolveLOP_Monotonic_MoreDaysNeverLessDeduction(t *testing.T) {
	// GIVEN: Fixed salary
	// THEN: Increasing LOP days never decreases the deduction

	sal := engine.SalaryStructure{Basic: engine.RupeesInt(50000), HRA: engine.RupeesInt(20000)}
	prev := decimal.Zero
	for days := 0; days <= 10; days++ {
		att := engine.AttendancePeriod{TotalDaysInMonth: 30, WorkingDays: 26, PresentDays: 26 - days, LOPDays: days}
		lop, _ := engine.ResolveLOP(att, sal)

		assert.True(t, lop.Amount.GreaterThanOrEqual(prev), "days %d", days)
		prev = lop.Amount
	}
}
