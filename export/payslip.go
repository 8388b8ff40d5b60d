package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYSLIP PDF
// =============================================================================

// Payslip renders one employee's payslip as a PDF and writes it to w.
// Only valid outputs should be rendered; callers gate on validation.
func Payslip(r Result, w io.Writer) error {
	out := r.Output
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Payslip - %s", out.Period))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", r.Employee.Name, r.Employee.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("PAN: %s    UAN: %s", r.Employee.PAN, r.Employee.UAN))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Bank: %s / %s", r.Employee.BankAccount, r.Employee.IFSC))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Days paid: %d of %d", out.Proration.EffectiveDays, out.Proration.TotalDaysInPeriod))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	payslipLine(pdf, "Basic", out.Earnings.Basic)
	payslipLine(pdf, "HRA", out.Earnings.HRA)
	payslipLine(pdf, "DA", out.Earnings.DA)
	payslipLine(pdf, "Allowances", out.Earnings.Allowances)
	payslipLine(pdf, "Overtime", out.Earnings.OvertimePay)
	payslipLine(pdf, "Shift allowances", out.Earnings.NightShiftPay.Add(out.Earnings.WeekendShiftPay))
	payslipLine(pdf, "Variable pay", out.Earnings.Bonus.Add(out.Earnings.Incentives).Add(out.Earnings.Arrears).Add(out.Earnings.Reimbursements))
	payslipLine(pdf, "Loss of pay", out.Earnings.LOPDeduction.Neg())
	payslipLine(pdf, "Gross (after LOP)", out.Earnings.NetGrossEarnings)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	payslipLine(pdf, "Provident Fund", out.Statutory.EmployeePF.Add(out.Statutory.VPF))
	payslipLine(pdf, "ESI", out.Statutory.EmployeeESI)
	payslipLine(pdf, "Professional Tax", out.Statutory.ProfessionalTax)
	payslipLine(pdf, "LWF", out.Statutory.LWF)
	payslipLine(pdf, "TDS", out.Statutory.TDS)
	payslipLine(pdf, "Other recoveries", out.NonStatutory.Total)
	payslipLine(pdf, "Total deductions", out.TotalDeductions)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	payslipLine(pdf, "NET PAY", out.NetPay)

	return pdf.Output(w)
}

func payslipLine(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.Cell(90, 6, label)
	pdf.CellFormat(40, 6, amount.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.Ln(6)
}
