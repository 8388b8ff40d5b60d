package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

func july2025() engine.PayPeriod {
	return engine.PayPeriod{Month: time.July, Year: 2025}
}

func TestProrate_FullMonth_FactorOne(t *testing.T) {
	// GIVEN: Employee joined well before the period, no exit
	// WHEN: Prorating July 2025
	// THEN: Factor is exactly 1 with all 31 days effective

	joined := engine.NewDate(2023, time.April, 1)
	result, validation := engine.Prorate(july2025(), joined, nil)

	assert.True(t, result.Factor.Equal(decimal.NewFromInt(1)), "factor = %s", result.Factor)
	assert.Equal(t, 31, result.EffectiveDays)
	assert.Equal(t, 31, result.TotalDaysInPeriod)
	assert.True(t, result.FullPeriod())
	assert.Empty(t, validation.Warnings)
}

func TestProrate_MidMonthJoiner_InclusiveSpan(t *testing.T) {
	// GIVEN: Employee joins July 15
	// THEN: July 15 through 31 is 17 payable days

	joined := engine.NewDate(2025, time.July, 15)
	result, _ := engine.Prorate(july2025(), joined, nil)

	assert.Equal(t, 17, result.EffectiveDays)
	want := decimal.NewFromInt(17).Div(decimal.NewFromInt(31))
	assert.True(t, result.Factor.Equal(want), "factor = %s", result.Factor)
}

func TestProrate_MidMonthExit_InclusiveSpan(t *testing.T) {
	joined := engine.NewDate(2024, time.January, 1)
	exit := engine.NewDate(2025, time.July, 10)
	result, _ := engine.Prorate(july2025(), joined, &exit)

	assert.Equal(t, 10, result.EffectiveDays)
}

func TestProrate_JoinAndExitSamePeriod_InclusiveSpan(t *testing.T) {
	joined := engine.NewDate(2025, time.July, 10)
	exit := engine.NewDate(2025, time.July, 20)
	result, _ := engine.Prorate(july2025(), joined, &exit)

	assert.Equal(t, 11, result.EffectiveDays)
}

func TestProrate_JoinsAfterPeriod_ZeroFactorWithWarning(t *testing.T) {
	// GIVEN: Employee joins in August
	// WHEN: Prorating July
	// THEN: Zero factor, flagged for review, not an error

	joined := engine.NewDate(2025, time.August, 1)
	result, validation := engine.Prorate(july2025(), joined, nil)

	assert.True(t, result.Factor.IsZero())
	assert.Equal(t, 0, result.EffectiveDays)
	assert.NotEmpty(t, validation.Warnings)
	assert.Empty(t, validation.Errors)
}

func TestProrate_ExitsBeforePeriod_ZeroFactorWithWarning(t *testing.T) {
	joined := engine.NewDate(2024, time.January, 1)
	exit := engine.NewDate(2025, time.June, 30)
	result, validation := engine.Prorate(july2025(), joined, &exit)

	assert.True(t, result.Factor.IsZero())
	assert.NotEmpty(t, validation.Warnings)
}

func TestProrate_FactorBounds(t *testing.T) {
	// GIVEN: Any joining date on or before the period end
	// THEN: 0 < factor <= 1

	one := decimal.NewFromInt(1)
	for day := 1; day <= 31; day++ {
		joined := engine.NewDate(2025, time.July, day)
		result, _ := engine.Prorate(july2025(), joined, nil)

		assert.True(t, result.Factor.IsPositive(), "day %d: factor %s", day, result.Factor)
		assert.True(t, result.Factor.LessThanOrEqual(one), "day %d: factor %s", day, result.Factor)
	}
}
