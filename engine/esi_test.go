package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

func esiRules() engine.ESIRules {
	return engine.DefaultRules().ESI
}

func TestCalculateESI_AtCeiling_Included(t *testing.T) {
	// GIVEN: Net gross exactly at the 21000 ceiling
	// THEN: ESI applies - the cutoff is strictly greater-than
	//       employee = round(21000 x 0.75%) = 158
	//       employer = round(21000 x 3.25%) = 683

	emp := engine.EmployeeProfile{ESIApplicable: true}
	result := engine.CalculateESI(engine.RupeesInt(21000), emp, esiRules())

	assert.True(t, result.Applicable)
	assert.True(t, result.EmployeeESI.Equal(engine.RupeesInt(158)), "employee = %s", result.EmployeeESI)
	assert.True(t, result.EmployerESI.Equal(engine.RupeesInt(683)), "employer = %s", result.EmployerESI)
}

func TestCalculateESI_OneRupeeAboveCeiling_Excluded(t *testing.T) {
	emp := engine.EmployeeProfile{ESIApplicable: true}
	result := engine.CalculateESI(engine.RupeesInt(21001), emp, esiRules())

	assert.False(t, result.Applicable)
	assert.True(t, result.EmployeeESI.IsZero())
	assert.True(t, result.EmployerESI.IsZero())
}

func TestCalculateESI_NotApplicable_AllZero(t *testing.T) {
	emp := engine.EmployeeProfile{ESIApplicable: false}
	result := engine.CalculateESI(engine.RupeesInt(15000), emp, esiRules())

	assert.False(t, result.Applicable)
	assert.True(t, result.EmployeeESI.IsZero())
}

func TestCalculateESI_LowWage_Contributes(t *testing.T) {
	// round(10000 x 0.75%) = 75, round(10000 x 3.25%) = 325

	emp := engine.EmployeeProfile{ESIApplicable: true}
	result := engine.CalculateESI(engine.RupeesInt(10000), emp, esiRules())

	assert.True(t, result.EmployeeESI.Equal(engine.RupeesInt(75)))
	assert.True(t, result.EmployerESI.Equal(engine.RupeesInt(325)))
}
