package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSavings(t *testing.T) {
	tests := []struct {
		name      string
		billType  string
		reduction float64
		want      float64
	}{
		{"electricity uses kWh factor", "electricity", 100, 50.0},
		{"water uses liters factor", "water", 1000, 0.3},
		{"gas uses cubic meters factor", "gas", 10, 20.0},
		{"unknown type falls back to electricity factor", "solar", 100, 50.0},
		{"zero reduction", "electricity", 0, 0},
		{"negative reduction passes sign through", "gas", -5, -10.0},
		{"result rounded to 2 decimals", "water", 123.456, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateSavings(tt.billType, tt.reduction))
		})
	}
}

func TestCalculateSavingsIgnoresUnit(t *testing.T) {
	// A gallons-denominated water bill is still charged the liters factor.
	// The factor table models per-unit factors but selection always takes
	// the first declared unit for the type.
	assert.Equal(t, 0.3, CalculateSavings("water", 1000))
}

func TestImpacts(t *testing.T) {
	got := Impacts(44)

	assert.Equal(t, 2.0, got.TreesPlanted)
	assert.Equal(t, 108.9, got.CarMilesAvoided)
	assert.Equal(t, 536.6, got.PlasticBottlesRecycled)
	assert.Equal(t, 88000.0, got.LightBulbHours)
}

func TestImpactsZero(t *testing.T) {
	got := Impacts(0)

	assert.Zero(t, got.TreesPlanted)
	assert.Zero(t, got.CarMilesAvoided)
	assert.Zero(t, got.PlasticBottlesRecycled)
	assert.Zero(t, got.LightBulbHours)
}

func TestUnits(t *testing.T) {
	assert.Equal(t, []string{"kWh", "MWh"}, Units("electricity"))
	assert.Equal(t, []string{"liters", "cubic_meters", "gallons"}, Units("water"))
	assert.Equal(t, []string{"cubic_meters", "therms", "kWh"}, Units("gas"))
	assert.Nil(t, Units("coal"))
}
