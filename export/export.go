/*
Package export turns finalized payroll outputs into export-ready shapes:
bank transfer records, the PF ECR upload file, the ESI return, and
payslip PDFs.

Everything here is a pure transformation of already-computed outputs -
no calculation happens in this package, and invalid outputs (failed
validation) are skipped rather than exported.
*/
package export

import (
	"github.com/warp/payroll-engine/engine"
)

// Result pairs a payroll output with the employee profile it was
// computed for. Exports need identifiers (bank account, UAN, ESIC
// number) that the calculation output deliberately does not carry.
type Result struct {
	Employee engine.EmployeeProfile
	Output   *engine.PayrollOutput
}

// StatutoryFile is a generated statutory upload: a named file with
// header and body lines in the target format.
type StatutoryFile struct {
	Name   string
	Header string
	Lines  []string
}

// payable filters results down to those safe to pay out: valid and with
// a positive net pay.
func payable(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Output == nil || !r.Output.Validation.IsValid() {
			continue
		}
		if !r.Output.NetPay.IsPositive() {
			continue
		}
		out = append(out, r)
	}
	return out
}
