/*
deductions.go - Non-statutory deduction aggregation

Sums the manual recoveries (loan EMI, salary advance, insurance,
canteen, other). Each field is independently optional and clamped at
zero; these are applied after statutory deductions.
*/
package engine

// AggregateManualDeductions echoes the manual recoveries with a total,
// clamping each line at zero.
func AggregateManualDeductions(md ManualDeductions) NonStatutoryDeductions {
	out := NonStatutoryDeductions{
		LoanEMI:          ClampNonNegative(md.LoanEMI),
		AdvanceRecovery:  ClampNonNegative(md.AdvanceRecovery),
		InsurancePremium: ClampNonNegative(md.InsurancePremium),
		CanteenDeduction: ClampNonNegative(md.CanteenDeduction),
		OtherDeductions:  ClampNonNegative(md.OtherDeductions),
	}
	out.Total = out.LoanEMI.
		Add(out.AdvanceRecovery).
		Add(out.InsurancePremium).
		Add(out.CanteenDeduction).
		Add(out.OtherDeductions)
	return out
}
