package export

import (
	"fmt"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// PF ECR - Electronic Challan cum Return upload file
// =============================================================================

// ecrSeparator is the field separator the EPFO unified portal expects.
const ecrSeparator = "#~#"

// PFECR builds the monthly ECR upload for PF-opted employees. One line
// per member:
//
//	UAN#~#Name#~#Gross#~#EPF wages#~#EPS wages#~#EDLI wages#~#
//	EE share#~#EPS contribution#~#ER difference#~#NCP days#~#Refund
//
// Employees without a PF contribution this period are omitted.
func PFECR(results []Result, establishmentCode string, period engine.PayPeriod) StatutoryFile {
	file := StatutoryFile{
		Name:   fmt.Sprintf("ECR_%s_%s.txt", establishmentCode, period),
		Header: fmt.Sprintf("ECR for establishment %s, wage month %s", establishmentCode, period),
	}

	for _, r := range results {
		out := r.Output
		if out == nil || !out.Validation.IsValid() {
			continue
		}
		if !r.Employee.PFOptIn || out.Statutory.EmployeePF.IsZero() {
			continue
		}

		pfWages := out.Statutory.PFWageBase.Round(0)
		ncpDays := out.Proration.TotalDaysInPeriod - out.Proration.EffectiveDays

		line := fmt.Sprint(
			r.Employee.UAN, ecrSeparator,
			r.Employee.Name, ecrSeparator,
			out.Earnings.GrossEarnings.Round(0), ecrSeparator,
			pfWages, ecrSeparator,
			pfWages, ecrSeparator,
			pfWages, ecrSeparator,
			out.Statutory.EmployeePF, ecrSeparator,
			out.Statutory.EmployerEPS, ecrSeparator,
			out.Statutory.EmployerEPF, ecrSeparator,
			ncpDays, ecrSeparator,
			0,
		)
		file.Lines = append(file.Lines, line)
	}

	return file
}
