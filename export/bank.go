package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// BANK TRANSFER FILE - Net pay disbursement records
// =============================================================================

// BankTransferRecord is one row of the salary disbursement file handed
// to the bank.
type BankTransferRecord struct {
	EmployeeID  engine.EmployeeID
	Name        string
	BankAccount string
	IFSC        string
	Amount      decimal.Decimal
	Narrative   string
}

// BankTransferFile builds disbursement records for every valid, payable
// output. Invalid or zero-net results are skipped: the bank file must
// never carry an untrustworthy amount.
func BankTransferFile(results []Result) []BankTransferRecord {
	var records []BankTransferRecord
	for _, r := range payable(results) {
		records = append(records, BankTransferRecord{
			EmployeeID:  r.Employee.EmployeeID,
			Name:        r.Employee.Name,
			BankAccount: r.Employee.BankAccount,
			IFSC:        r.Employee.IFSC,
			Amount:      engine.RoundRupee(r.Output.NetPay),
			Narrative:   fmt.Sprintf("SALARY %s", r.Output.Period),
		})
	}
	return records
}

// TotalDisbursement sums the transfer amounts, for the file trailer.
func TotalDisbursement(records []BankTransferRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	return total
}
