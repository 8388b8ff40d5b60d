package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func validProfile() engine.EmployeeProfile {
	return engine.EmployeeProfile{
		EmployeeID:    "EMP001",
		Name:          "Asha Rao",
		PAN:           "ABCPE1234F",
		UAN:           "100200300400",
		ESICNumber:    "3100012345",
		BankAccount:   "50100123456789",
		IFSC:          "HDFC0001234",
		JoiningDate:   engine.NewDate(2023, time.April, 1),
		WorkState:     "KA",
		PFOptIn:       true,
		ESIApplicable: true,
	}
}

func validInput() engine.PayrollInput {
	return engine.PayrollInput{
		Period:   engine.PayPeriod{Month: time.July, Year: 2025},
		Employee: validProfile(),
		Salary: engine.SalaryStructure{
			Basic:            engine.RupeesInt(50000),
			HRA:              engine.RupeesInt(20000),
			SpecialAllowance: engine.RupeesInt(15000),
		},
		Attendance: engine.AttendancePeriod{
			TotalDaysInMonth: 31,
			WorkingDays:      27,
			PresentDays:      27,
		},
	}
}

func newValidator() *engine.Validator {
	return &engine.Validator{Rules: engine.DefaultRules()}
}

// =============================================================================
// IDENTIFIER FORMAT TESTS
// =============================================================================

func TestValidPAN(t *testing.T) {
	assert.True(t, engine.ValidPAN("ABCPE1234F"))
	assert.False(t, engine.ValidPAN("abcpe1234f"), "lowercase rejected")
	assert.False(t, engine.ValidPAN("ABCP1234F"), "too few letters")
	assert.False(t, engine.ValidPAN("ABCPE12345"), "digit in last position")
	assert.False(t, engine.ValidPAN(""))
}

func TestValidIFSC(t *testing.T) {
	assert.True(t, engine.ValidIFSC("HDFC0001234"))
	assert.True(t, engine.ValidIFSC("SBIN0ABC123"))
	assert.False(t, engine.ValidIFSC("HDFC1001234"), "fifth character must be zero")
	assert.False(t, engine.ValidIFSC("HDF00012345"))
	assert.False(t, engine.ValidIFSC(""))
}

func TestValidUAN(t *testing.T) {
	assert.True(t, engine.ValidUAN("100200300400"))
	assert.False(t, engine.ValidUAN("10020030040"), "eleven digits")
	assert.False(t, engine.ValidUAN("1002003004001"), "thirteen digits")
	assert.False(t, engine.ValidUAN("10020030040A"))
}

// =============================================================================
// VALIDATOR TESTS
// =============================================================================

func TestValidate_CleanInput_NoFindings(t *testing.T) {
	result := newValidator().Validate(validInput())

	assert.True(t, result.IsValid())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_MissingIdentity_Errors(t *testing.T) {
	in := validInput()
	in.Employee.Name = ""
	in.Employee.EmployeeID = ""

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
	assert.Len(t, result.Errors, 2)
}

func TestValidate_MalformedPANAndIFSC_Errors(t *testing.T) {
	in := validInput()
	in.Employee.PAN = "NOT-A-PAN"
	in.Employee.IFSC = "NOPE"

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
	assert.Len(t, result.Errors, 2)
}

func TestValidate_PresentExceedsWorking_Error(t *testing.T) {
	in := validInput()
	in.Attendance.PresentDays = 28
	in.Attendance.WorkingDays = 27

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
}

func TestValidate_NegativeLOPDays_Error(t *testing.T) {
	in := validInput()
	in.Attendance.LOPDays = -1

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
}

func TestValidate_PFOptedWithoutUAN_Warning(t *testing.T) {
	// GIVEN: PF-opted employee with no UAN
	// THEN: Flagged for review but calculation may proceed

	in := validInput()
	in.Employee.UAN = ""

	result := newValidator().Validate(in)

	assert.True(t, result.IsValid())
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_ESIApplicableWithoutESIC_Warning(t *testing.T) {
	in := validInput()
	in.Employee.ESICNumber = ""

	result := newValidator().Validate(in)

	assert.True(t, result.IsValid())
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_ExitBeforeJoining_Error(t *testing.T) {
	in := validInput()
	exit := engine.NewDate(2023, time.March, 1)
	in.Employee.ExitDate = &exit

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
}

func TestValidate_CTCMismatch_Warning(t *testing.T) {
	// GIVEN: Components summing to 85000/month against a 15 lakh CTC
	//        (125000/month) - far outside the 1% tolerance

	in := validInput()
	in.Salary.CTC = engine.RupeesInt(1500000)

	result := newValidator().Validate(in)

	assert.True(t, result.IsValid())
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_CTCWithinTolerance_NoWarning(t *testing.T) {
	in := validInput()
	in.Salary.CTC = engine.RupeesInt(1020000) // 85000 x 12

	result := newValidator().Validate(in)

	assert.Empty(t, result.Warnings)
}

func TestValidate_UnknownJurisdiction_Warnings(t *testing.T) {
	in := validInput()
	in.Employee.WorkState = "GJ"

	result := newValidator().Validate(in)

	assert.True(t, result.IsValid())
	assert.Len(t, result.Warnings, 2) // no PT table, no LWF rule
}

func TestValidate_NegativeSalaryComponent_Error(t *testing.T) {
	in := validInput()
	in.Salary.HRA = engine.RupeesInt(-100)

	result := newValidator().Validate(in)

	assert.False(t, result.IsValid())
}
