package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// DATE TESTS
// =============================================================================

func TestParseDate_WellFormed_RoundTrips(t *testing.T) {
	d, err := engine.ParseDate("2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", d.String())
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParseDate_Malformed_ContractViolation(t *testing.T) {
	for _, bad := range []string{"15-07-2025", "2025/07/15", "garbage", ""} {
		_, err := engine.ParseDate(bad)
		assert.True(t, errors.Is(err, engine.ErrUnparseableDate), "input %q", bad)
	}
}

func TestDaysBetween_Inclusive(t *testing.T) {
	// GIVEN: Two dates in the same month
	// WHEN: Counting days between them
	// THEN: Both endpoints count (15th through 31st is 17 days)

	from := engine.NewDate(2025, time.July, 15)
	to := engine.NewDate(2025, time.July, 31)
	assert.Equal(t, 17, engine.DaysBetween(from, to))

	same := engine.NewDate(2025, time.July, 1)
	assert.Equal(t, 1, engine.DaysBetween(same, same))
}

// =============================================================================
// PAY PERIOD TESTS
// =============================================================================

func TestPayPeriod_TotalDays_CalendarAware(t *testing.T) {
	assert.Equal(t, 31, engine.PayPeriod{Month: time.July, Year: 2025}.TotalDays())
	assert.Equal(t, 30, engine.PayPeriod{Month: time.June, Year: 2025}.TotalDays())
	assert.Equal(t, 28, engine.PayPeriod{Month: time.February, Year: 2025}.TotalDays())
	assert.Equal(t, 29, engine.PayPeriod{Month: time.February, Year: 2024}.TotalDays())
}

func TestPayPeriod_Valid_RejectsImpossibleMonths(t *testing.T) {
	assert.True(t, engine.PayPeriod{Month: time.January, Year: 2025}.Valid())
	assert.False(t, engine.PayPeriod{Month: 0, Year: 2025}.Valid())
	assert.False(t, engine.PayPeriod{Month: 13, Year: 2025}.Valid())
	assert.False(t, engine.PayPeriod{Month: time.March, Year: 0}.Valid())
}

func TestPayPeriod_NextPrevious_YearBoundary(t *testing.T) {
	dec := engine.PayPeriod{Month: time.December, Year: 2024}
	jan := engine.PayPeriod{Month: time.January, Year: 2025}

	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, dec, jan.Previous())
}

func TestPayPeriod_FinancialYear_AprilStart(t *testing.T) {
	// GIVEN: The Indian financial year runs April through March
	// THEN: March 2025 belongs to FY 2024; April 2025 starts FY 2025

	assert.Equal(t, 2024, engine.PayPeriod{Month: time.March, Year: 2025}.FinancialYear())
	assert.Equal(t, 2025, engine.PayPeriod{Month: time.April, Year: 2025}.FinancialYear())
	assert.Equal(t, 2025, engine.PayPeriod{Month: time.December, Year: 2025}.FinancialYear())
}

func TestPayPeriod_RemainingMonthsInFY(t *testing.T) {
	cases := []struct {
		month time.Month
		want  int
	}{
		{time.April, 12},
		{time.December, 4},
		{time.January, 3},
		{time.March, 1},
	}
	for _, c := range cases {
		p := engine.PayPeriod{Month: c.month, Year: 2025}
		assert.Equal(t, c.want, p.RemainingMonthsInFY(), "month %s", c.month)
	}
}

func TestPayPeriod_String(t *testing.T) {
	assert.Equal(t, "2025-07", engine.PayPeriod{Month: time.July, Year: 2025}.String())
	assert.Equal(t, "2025-01", engine.PayPeriod{Month: time.January, Year: 2025}.String())
}
