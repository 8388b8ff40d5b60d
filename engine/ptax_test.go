package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/engine"
)

func TestCalculatePT_Karnataka_SlabBoundary(t *testing.T) {
	// GIVEN: KA charges nothing below 25000 and 200 at or above it

	rules := engine.DefaultRules()

	assert.True(t, engine.CalculatePT(engine.RupeesInt(24999), "KA", rules).IsZero())
	assert.True(t, engine.CalculatePT(engine.RupeesInt(25000), "KA", rules).Equal(engine.RupeesInt(200)))
	assert.True(t, engine.CalculatePT(engine.RupeesInt(85000), "KA", rules).Equal(engine.RupeesInt(200)))
}

func TestCalculatePT_Maharashtra_MiddleSlab(t *testing.T) {
	rules := engine.DefaultRules()

	assert.True(t, engine.CalculatePT(engine.RupeesInt(9000), "MH", rules).Equal(engine.RupeesInt(175)))
	assert.True(t, engine.CalculatePT(engine.RupeesInt(12000), "MH", rules).Equal(engine.RupeesInt(200)))
}

func TestCalculatePT_WestBengal_AdjacentSlabs(t *testing.T) {
	// GIVEN: WB's 110 band ends at 15000; the 130 band starts at 15001

	rules := engine.DefaultRules()

	assert.True(t, engine.CalculatePT(engine.RupeesInt(15000), "WB", rules).Equal(engine.RupeesInt(110)))
	assert.True(t, engine.CalculatePT(engine.RupeesInt(15001), "WB", rules).Equal(engine.RupeesInt(130)))
}

func TestCalculatePT_FractionalWageBetweenBounds_UpperBand(t *testing.T) {
	// GIVEN: A wage strictly between two integer slab bounds, as LOP
	//        proration routinely produces (MH bands end at 10000 and
	//        start again at 10001)
	// THEN: The upper band applies - a fractional wage never escapes
	//       the table

	rules := engine.DefaultRules()

	assert.True(t, engine.CalculatePT(engine.RupeesInt(10000), "MH", rules).Equal(engine.RupeesInt(175)))
	assert.True(t, engine.CalculatePT(engine.Rupees(10000.50), "MH", rules).Equal(engine.RupeesInt(200)))
	assert.True(t, engine.CalculatePT(engine.RupeesInt(10001), "MH", rules).Equal(engine.RupeesInt(200)))

	// Same at a WB boundary
	assert.True(t, engine.CalculatePT(engine.Rupees(15000.25), "WB", rules).Equal(engine.RupeesInt(130)))
}

func TestCalculatePT_UnknownState_Zero(t *testing.T) {
	// GIVEN: A state with no configured table
	// THEN: Deduct nothing (the validator flags the gap separately)

	rules := engine.DefaultRules()
	assert.True(t, engine.CalculatePT(engine.RupeesInt(85000), "GJ", rules).IsZero())
}
