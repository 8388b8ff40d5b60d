package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

func april2025() engine.PayPeriod {
	return engine.PayPeriod{Month: time.April, Year: 2025}
}

func TestCalculateTDS_BelowExemption_Zero(t *testing.T) {
	// GIVEN: 25000/month projects to 300000/year, 250000 after the
	//        standard deduction - entirely inside the nil slab

	result := engine.CalculateTDS(engine.RupeesInt(25000), april2025(), engine.YTDAccumulator{}, engine.DefaultRules().TDS)

	assert.True(t, result.AnnualTax.IsZero())
	assert.True(t, result.MonthlyTDS.IsZero())
}

func TestCalculateTDS_SlabBoundary_NoDoubleCounting(t *testing.T) {
	// GIVEN: 62500/month -> annual 750000 -> taxable exactly 700000
	// THEN: The 5% band covers 300000..700000 and the 10% band
	//       contributes nothing: tax = 20000, +4% cess = 20800

	result := engine.CalculateTDS(engine.RupeesInt(62500), april2025(), engine.YTDAccumulator{}, engine.DefaultRules().TDS)

	assert.True(t, result.TaxableIncome.Equal(engine.RupeesInt(700000)), "taxable = %s", result.TaxableIncome)
	assert.True(t, result.AnnualTax.Equal(engine.RupeesInt(20800)), "annual = %s", result.AnnualTax)
	// 20800 / 12 remaining months, rounded to the rupee
	assert.True(t, result.MonthlyTDS.Equal(engine.RupeesInt(1733)), "monthly = %s", result.MonthlyTDS)
}

func TestCalculateTDS_JustAboveBoundary_HigherRateOnExcessOnly(t *testing.T) {
	// GIVEN: 62600/month -> taxable 701200
	// THEN: Only the 1200 above the boundary is taxed at 10%:
	//       20000 + 120 = 20120, +4% cess = 20924.8 -> 20925

	result := engine.CalculateTDS(engine.RupeesInt(62600), april2025(), engine.YTDAccumulator{}, engine.DefaultRules().TDS)

	assert.True(t, result.AnnualTax.Equal(engine.RupeesInt(20925)), "annual = %s", result.AnnualTax)
}

func TestCalculateTDS_YTDTrueUp_SpreadsOverRemainingMonths(t *testing.T) {
	// GIVEN: 10000 already withheld this financial year, January period
	// THEN: The outstanding (20800 - 10000) spreads over Jan-Mar

	jan := engine.PayPeriod{Month: time.January, Year: 2026}
	ytd := engine.YTDAccumulator{TDSDeducted: engine.RupeesInt(10000)}

	result := engine.CalculateTDS(engine.RupeesInt(62500), jan, ytd, engine.DefaultRules().TDS)

	assert.Equal(t, 3, result.RemainingMonths)
	assert.True(t, result.MonthlyTDS.Equal(engine.RupeesInt(3600)), "monthly = %s", result.MonthlyTDS)
}

func TestCalculateTDS_OverWithheld_NeverRefunds(t *testing.T) {
	// GIVEN: Prior withholding already exceeds the projected annual tax
	// THEN: This period withholds zero - never a negative amount

	ytd := engine.YTDAccumulator{TDSDeducted: engine.RupeesInt(50000)}
	result := engine.CalculateTDS(engine.RupeesInt(62500), april2025(), ytd, engine.DefaultRules().TDS)

	assert.True(t, result.MonthlyTDS.IsZero())
}

func TestCalculateTDS_TopSlab_UnboundedBand(t *testing.T) {
	// GIVEN: 200000/month -> annual 2400000 -> taxable 2350000
	// THEN: 0 + 20000 + 30000 + 30000 + 60000 + 255000 = 395000
	//       +4% cess = 410800

	result := engine.CalculateTDS(engine.RupeesInt(200000), april2025(), engine.YTDAccumulator{}, engine.DefaultRules().TDS)

	assert.True(t, result.AnnualTax.Equal(engine.RupeesInt(410800)), "annual = %s", result.AnnualTax)
}
