// Package carbon converts utility usage reductions into CO2-equivalent
// savings and derived environmental impact figures.
package carbon

import "math"

// FactorEntry is one emission factor for a resource type and unit.
type FactorEntry struct {
	Unit   string
	KgCO2e float64 // kg CO2 equivalent per unit
}

// emissionFactors lists the per-unit factors for each bill type, in
// declaration order. The first entry per type is the one applied by
// CalculateSavings; the remaining entries are served as reference data
// by the bill-types endpoint.
var emissionFactors = map[string][]FactorEntry{
	"electricity": {
		{Unit: "kWh", KgCO2e: 0.5}, // varies by region
		{Unit: "MWh", KgCO2e: 500},
	},
	"water": {
		{Unit: "liters", KgCO2e: 0.0003},
		{Unit: "cubic_meters", KgCO2e: 0.3},
		{Unit: "gallons", KgCO2e: 0.001},
	},
	"gas": {
		{Unit: "cubic_meters", KgCO2e: 2.0},
		{Unit: "therms", KgCO2e: 5.3},
		{Unit: "kWh", KgCO2e: 0.2}, // gas equivalent
	},
}

// defaultFactor is applied when the bill type is not recognized
// (the electricity kWh factor).
const defaultFactor = 0.5

// Units returns the supported usage units for a bill type, in
// declaration order.
func Units(billType string) []string {
	entries, ok := emissionFactors[billType]
	if !ok {
		return nil
	}
	units := make([]string, len(entries))
	for i, e := range entries {
		units[i] = e.Unit
	}
	return units
}

// factorFor selects the emission factor for a bill type. The recorded
// usage unit is intentionally not consulted: the first declared unit's
// factor is applied regardless, matching the accounting the rest of the
// system was calibrated against.
func factorFor(billType string) float64 {
	if entries, ok := emissionFactors[billType]; ok {
		return entries[0].KgCO2e
	}
	return defaultFactor
}

// CalculateSavings converts a usage reduction for the given bill type into
// kilograms of CO2 equivalent, rounded to 2 decimal places. The sign of
// usageReduction is passed through unchanged.
func CalculateSavings(billType string, usageReduction float64) float64 {
	return round(usageReduction*factorFor(billType), 2)
}

// EquivalentImpacts expresses a carbon saving as relatable environmental
// equivalents, each rounded to 1 decimal place.
type EquivalentImpacts struct {
	TreesPlanted           float64 `json:"trees_planted"`
	CarMilesAvoided        float64 `json:"car_miles_avoided"`
	PlasticBottlesRecycled float64 `json:"plastic_bottles_recycled"`
	LightBulbHours         float64 `json:"light_bulbs_hours"`
}

// Impacts converts a carbon saving in kg into equivalent impacts.
// Divisors: one tree absorbs ~22kg CO2/year, ~0.404kg CO2 per car mile,
// ~0.082kg per recycled bottle, ~0.0005kg per LED bulb hour.
func Impacts(carbonKg float64) EquivalentImpacts {
	return EquivalentImpacts{
		TreesPlanted:           round(carbonKg/22, 1),
		CarMilesAvoided:        round(carbonKg/0.404, 1),
		PlasticBottlesRecycled: round(carbonKg/0.082, 1),
		LightBulbHours:         round(carbonKg/0.0005, 1),
	}
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
