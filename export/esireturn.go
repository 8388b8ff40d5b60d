package export

import (
	"fmt"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// ESI RETURN - Monthly contribution return
// =============================================================================

// ESIReturn builds the monthly ESI contribution lines. One line per
// contributing employee:
//
//	ESIC number|Name|Days worked|Wages|Employee share|Employer share
//
// Employees with no ESI contribution this period (not applicable, or
// over the wage ceiling) are omitted - the return only lists members
// who actually contributed.
func ESIReturn(results []Result, establishmentCode string, period engine.PayPeriod) StatutoryFile {
	file := StatutoryFile{
		Name:   fmt.Sprintf("ESI_%s_%s.txt", establishmentCode, period),
		Header: fmt.Sprintf("ESI monthly return for establishment %s, period %s", establishmentCode, period),
	}

	for _, r := range results {
		out := r.Output
		if out == nil || !out.Validation.IsValid() {
			continue
		}
		if out.Statutory.EmployeeESI.IsZero() {
			continue
		}

		line := fmt.Sprintf("%s|%s|%d|%s|%s|%s",
			r.Employee.ESICNumber,
			r.Employee.Name,
			out.Proration.EffectiveDays,
			out.Earnings.NetGrossEarnings.Round(0),
			out.Statutory.EmployeeESI,
			out.Statutory.EmployerESI,
		)
		file.Lines = append(file.Lines, line)
	}

	return file
}
