package engine_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/engine/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// Note: validProfile and validInput are defined in validate_test.go

// rulesWithoutTDS disables income-tax withholding so the worked examples
// below exercise PF/ESI in isolation.
func rulesWithoutTDS() *engine.RuleSet {
	rules := engine.DefaultRules()
	rules.TDS = engine.TDSRegime{
		Name:  "nil-withholding",
		Slabs: []engine.TDSSlab{{UpTo: decimal.Zero, Rate: decimal.Zero}},
	}
	return rules
}

func newEngine(t *testing.T, rules *engine.RuleSet) (*engine.Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	eng, err := engine.New(rules, mem)
	require.NoError(t, err)
	return eng, mem
}

// exampleInput is the canonical single-employee payroll: 85000/month
// gross, full attendance, PF and ESI flags on, a state with no PT or
// LWF configured.
func exampleInput() engine.PayrollInput {
	in := validInput()
	in.Employee.WorkState = "GJ"
	in.Attendance = engine.AttendancePeriod{
		TotalDaysInMonth: 31,
		WorkingDays:      26,
		PresentDays:      26,
	}
	return in
}

// =============================================================================
// END-TO-END CALCULATIONS
// =============================================================================

func TestProcessPayroll_FullAttendance_GrossToNet(t *testing.T) {
	// GIVEN: basic=50000, hra=20000, allowances=15000, full attendance,
	//        pfOptIn and esiApplicable, no PT/LWF for the state, no TDS
	// WHEN: Processing the period
	// THEN: gross=85000; PF = round(min(50000,15000) x 12%) = 1800;
	//       ESI = 0 (85000 > 21000 ceiling); net = 85000 - 1800 = 83200

	eng, _ := newEngine(t, rulesWithoutTDS())
	out, err := eng.ProcessPayroll(context.Background(), exampleInput())
	require.NoError(t, err)

	assert.True(t, out.Validation.IsValid(), "errors: %v", out.Validation.Errors)
	assert.Equal(t, "85000.00", out.Earnings.GrossEarnings.StringFixed(2))
	assert.Equal(t, "1800.00", out.Statutory.EmployeePF.StringFixed(2))
	assert.True(t, out.Statutory.EmployeeESI.IsZero(), "above the ESI ceiling")
	assert.True(t, out.Statutory.ProfessionalTax.IsZero())
	assert.True(t, out.Statutory.LWF.IsZero())
	assert.Equal(t, "83200.00", out.NetPay.StringFixed(2))
}

func TestProcessPayroll_LossOfPay_NetDropsProportionally(t *testing.T) {
	// GIVEN: The same employee with 6 LOP days in a 30-day June
	// THEN: lopAmount = (basic+hra+conveyance)/30 x 6 and net gross
	//       drops by exactly that amount against the full-attendance run

	eng, _ := newEngine(t, rulesWithoutTDS())

	full := exampleInput()
	full.Period = engine.PayPeriod{Month: time.June, Year: 2025}
	full.Attendance.TotalDaysInMonth = 30
	fullOut, err := eng.ProcessPayroll(context.Background(), full)
	require.NoError(t, err)

	withLOP := full
	withLOP.Attendance.PresentDays = 20
	withLOP.Attendance.LOPDays = 6
	lopOut, err := eng.ProcessPayroll(context.Background(), withLOP)
	require.NoError(t, err)

	// Per-day rate excludes the special allowance: (50000+20000)/30
	wantLOP := engine.RupeesInt(70000).
		Div(decimal.NewFromInt(30)).
		Mul(decimal.NewFromInt(6))
	diff := lopOut.Earnings.LOPDeduction.Sub(wantLOP).Abs()
	assert.True(t, diff.LessThan(engine.Rupees(0.01)), "lop = %s", lopOut.Earnings.LOPDeduction)

	drop := fullOut.Earnings.NetGrossEarnings.Sub(lopOut.Earnings.NetGrossEarnings)
	assert.True(t, drop.Sub(wantLOP).Abs().LessThan(engine.Rupees(0.01)), "net gross drop = %s", drop)
	assert.True(t, lopOut.NetPay.LessThan(fullOut.NetPay))
}

func TestProcessPayroll_NoStatutoryFlags_ZeroPFAndESI(t *testing.T) {
	// GIVEN: pfOptIn=false and esiApplicable=false
	// THEN: PF and ESI are exactly zero regardless of wage level

	eng, _ := newEngine(t, rulesWithoutTDS())

	in := exampleInput()
	in.Employee.PFOptIn = false
	in.Employee.ESIApplicable = false
	in.Salary.Basic = engine.RupeesInt(500000)

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, out.Statutory.EmployeePF.IsZero())
	assert.True(t, out.Statutory.EmployerEPF.IsZero())
	assert.True(t, out.Statutory.EmployeeESI.IsZero())
	assert.True(t, out.Statutory.EmployerESI.IsZero())
}

func TestProcessPayroll_AllDeductionLines_SummedIntoNet(t *testing.T) {
	// GIVEN: A KA employee under the ESI ceiling with a loan EMI
	// THEN: Net = netGross - (PF + ESI + PT + TDS + LWF) - manual

	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Employee.WorkState = "KA"
	in.Salary = engine.SalaryStructure{
		Basic: engine.RupeesInt(12000),
		HRA:   engine.RupeesInt(6000),
	}
	in.Deductions = engine.ManualDeductions{LoanEMI: engine.RupeesInt(1500)}

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err)
	require.True(t, out.Validation.IsValid(), "errors: %v", out.Validation.Errors)

	// netGross 18000: PF = 1440 on basic 12000, ESI = 135 (under
	// ceiling), KA PT below 25000 = 0, TDS below exemption = 0.
	assert.Equal(t, "1440.00", out.Statutory.EmployeePF.StringFixed(2))
	assert.Equal(t, "135.00", out.Statutory.EmployeeESI.StringFixed(2))
	assert.True(t, out.Statutory.ProfessionalTax.IsZero())
	assert.True(t, out.Statutory.TDS.IsZero())
	assert.Equal(t, "1500.00", out.NonStatutory.Total.StringFixed(2))
	assert.Equal(t, "14925.00", out.NetPay.StringFixed(2))
}

// =============================================================================
// VALIDATION GATING
// =============================================================================

func TestProcessPayroll_InvalidAttendance_ZeroNetAndInvalid(t *testing.T) {
	// GIVEN: presentDays > workingDays
	// THEN: isValid=false, netPay=0, nothing computed

	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Attendance.PresentDays = 27
	in.Attendance.WorkingDays = 26

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err, "business problems are never Go errors")

	assert.False(t, out.Validation.IsValid())
	assert.True(t, out.NetPay.IsZero())
	assert.True(t, out.Earnings.GrossEarnings.IsZero())
}

func TestProcessPayroll_InvalidInput_YTDUntouched(t *testing.T) {
	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Employee.PAN = "BAD"
	in.YTD = engine.YTDAccumulator{NetPay: engine.RupeesInt(99999)}

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err)

	assert.False(t, out.Validation.IsValid())
	assert.True(t, out.YTD.NetPay.Equal(engine.RupeesInt(99999)))
}

// =============================================================================
// CONTRACT VIOLATIONS
// =============================================================================

func TestNew_NilRules_Error(t *testing.T) {
	_, err := engine.New(nil, store.NewMemory())
	assert.ErrorIs(t, err, engine.ErrNilRules)
}

func TestProcessPayroll_InvalidPeriod_Error(t *testing.T) {
	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Period = engine.PayPeriod{Month: 13, Year: 2025}

	_, err := eng.ProcessPayroll(context.Background(), in)
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
}

func TestProcessPayroll_MissingJoiningDate_Error(t *testing.T) {
	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Employee.JoiningDate = engine.Date{}

	_, err := eng.ProcessPayroll(context.Background(), in)
	assert.ErrorIs(t, err, engine.ErrMissingJoiningDate)
}

// =============================================================================
// DETERMINISM AND ACCUMULATION
// =============================================================================

func TestProcessPayroll_Idempotent(t *testing.T) {
	// GIVEN: Identical input processed twice
	// THEN: Byte-identical output (audit timestamps live elsewhere)

	eng, _ := newEngine(t, engine.DefaultRules())

	first, err := eng.ProcessPayroll(context.Background(), exampleInput())
	require.NoError(t, err)
	second, err := eng.ProcessPayroll(context.Background(), exampleInput())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestProcessPayroll_YTDAccumulates(t *testing.T) {
	eng, _ := newEngine(t, rulesWithoutTDS())

	in := exampleInput()
	in.YTD = engine.YTDAccumulator{
		GrossEarnings: engine.RupeesInt(170000),
		NetPay:        engine.RupeesInt(166400),
	}

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "255000.00", out.YTD.GrossEarnings.StringFixed(2))
	assert.Equal(t, "249600.00", out.YTD.NetPay.StringFixed(2))
}

func TestProcessPayroll_DeductionsExceedEarnings_NetFlooredAtZero(t *testing.T) {
	eng, _ := newEngine(t, engine.DefaultRules())

	in := exampleInput()
	in.Salary = engine.SalaryStructure{Basic: engine.RupeesInt(8000)}
	in.Deductions = engine.ManualDeductions{LoanEMI: engine.RupeesInt(20000)}

	out, err := eng.ProcessPayroll(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, out.NetPay.IsZero())
	assert.NotEmpty(t, out.Validation.Warnings)
}

// =============================================================================
// AUDIT TRAIL
// =============================================================================

func TestProcessPayroll_RecordsAuditEntry(t *testing.T) {
	eng, mem := newEngine(t, engine.DefaultRules())

	out, err := eng.ProcessPayroll(context.Background(), exampleInput())
	require.NoError(t, err)

	entries, err := mem.Query(context.Background(), engine.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, engine.AuditPayrollProcessed, entry.Action)
	assert.Equal(t, out.EmployeeID, entry.EmployeeID)
	assert.Equal(t, out.Period, entry.Period)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, out.NetPay.StringFixed(2), entry.Payload["net_pay"])
}

func TestLockPayroll_RecordsLockEvent(t *testing.T) {
	eng, mem := newEngine(t, engine.DefaultRules())
	p := engine.PayPeriod{Month: time.July, Year: 2025}

	require.NoError(t, eng.LockPayroll(context.Background(), p, "ops-admin"))

	entries, err := mem.Query(context.Background(), engine.AuditFilter{
		Actions: []engine.AuditAction{engine.AuditPayrollLocked},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ops-admin", entries[0].ActorID)
}
