/*
tds.go - Tax Deducted at Source (income-tax withholding)

ALGORITHM:
  1. Project annual gross as the period's net gross wage x 12. The flat
     projection keeps the calculation deterministic per period; the YTD
     true-up below absorbs month-to-month variation.
  2. Subtract the standard deduction to get taxable income.
  3. Apply the progressive slabs: each band taxes only the income inside
     it, so income exactly at a boundary is taxed entirely at the lower
     band's rate - no double counting at the edge.
  4. Add cess on the computed tax.
  5. True up against the financial year:
       monthlyTDS = max(0, (annualTax - ytdTDS) / remainingMonths)
     where remainingMonths counts the period's month through March.

  If prior withholding already covers the projected annual tax, this
  period withholds zero - never a refund through payroll.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// TDSResult breaks down the withholding projection for one period.
type TDSResult struct {
	AnnualGross     decimal.Decimal
	TaxableIncome   decimal.Decimal
	AnnualTax       decimal.Decimal // slab tax + cess
	RemainingMonths int
	MonthlyTDS      decimal.Decimal
}

var twelve = decimal.NewFromInt(12)

// CalculateTDS projects annual tax from the period's net gross wage and
// returns this period's withholding after the YTD true-up.
func CalculateTDS(netGross decimal.Decimal, period PayPeriod, ytd YTDAccumulator, regime TDSRegime) TDSResult {
	annualGross := netGross.Mul(twelve)
	taxable := ClampNonNegative(annualGross.Sub(regime.StandardDeduction))

	slabTax := progressiveTax(taxable, regime.Slabs)
	annualTax := RoundRupee(slabTax.Mul(decimal.NewFromInt(1).Add(Percent(regime.CessRate))))

	remaining := period.RemainingMonthsInFY()
	outstanding := annualTax.Sub(ytd.TDSDeducted)
	monthly := decimal.Zero
	if outstanding.IsPositive() {
		monthly = RoundRupee(outstanding.Div(decimal.NewFromInt(int64(remaining))))
	}

	return TDSResult{
		AnnualGross:     annualGross,
		TaxableIncome:   taxable,
		AnnualTax:       annualTax,
		RemainingMonths: remaining,
		MonthlyTDS:      monthly,
	}
}

// progressiveTax applies ordered slabs to taxable income. Each band
// taxes only the slice of income that falls inside it.
func progressiveTax(taxable decimal.Decimal, slabs []TDSSlab) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero

	for _, slab := range slabs {
		if taxable.LessThanOrEqual(lower) {
			break
		}

		upper := slab.UpTo
		if upper.IsZero() {
			// Unbounded top band
			upper = taxable
		}

		bandTop := MinDecimal(taxable, upper)
		bandIncome := bandTop.Sub(lower)
		if bandIncome.IsPositive() {
			tax = tax.Add(bandIncome.Mul(Percent(slab.Rate)))
		}
		lower = upper
	}

	return tax
}
