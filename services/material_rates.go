package services

import (
	"math"
	"strings"
)

// MaterialTypes are the recognized rate-lookup categories.
var MaterialTypes = []string{"steel", "aluminum", "copper", "concrete", "other"}

// MaterialUnits are the recognized quantity units.
var MaterialUnits = []string{"ea", "m", "kg", "l", "mm", "mm²", "mm³"}

// baseRates holds the per-unit base rate for each material type. Missing
// (type, unit) pairs fall back to the "other" rate for that unit, or 1.
var baseRates = map[string]map[string]float64{
	"steel": {
		"ea": 150, "m": 45, "kg": 2.5, "l": 5,
		"mm": 0.05, "mm²": 0.001, "mm³": 0.000008,
	},
	"aluminum": {
		"ea": 120, "m": 38, "kg": 6.5, "l": 8,
		"mm": 0.04, "mm²": 0.0012, "mm³": 0.00001,
	},
	"copper": {
		"ea": 200, "m": 85, "kg": 12, "l": 15,
		"mm": 0.09, "mm²": 0.0025, "mm³": 0.00002,
	},
	"concrete": {
		"ea": 80, "m": 25, "kg": 0.15, "l": 0.3,
		"mm": 0.02, "mm²": 0.0004, "mm³": 0.0000002,
	},
	"other": {
		"ea": 50, "m": 15, "kg": 1.5, "l": 3,
		"mm": 0.02, "mm²": 0.0005, "mm³": 0.000001,
	},
}

// gradeMultipliers scales the base rate by material grade. Lookup is a
// case-sensitive exact match; unknown grades apply 1.0.
var gradeMultipliers = map[string]float64{
	// Structural and pipe steel
	"A36":    1.0,
	"A53":    1.05,
	"A105":   1.15,
	"A106":   1.1,
	"A572":   1.15,
	"A992":   1.25,
	"S235":   0.95,
	"S355":   1.1,
	"API 5L": 1.2,
	"SS304":  2.8,
	"SS316":  3.5,

	// Welding electrodes
	"E6013": 0.9,
	"E7018": 1.0,
	"E8018": 1.2,

	// Concrete grades
	"C20": 0.9,
	"C25": 1.0,
	"C30": 1.1,
	"C35": 1.2,
	"C40": 1.3,

	// Aluminum alloys
	"6061-T6": 1.0,
	"6063":    0.9,
	"5052":    0.95,
	"7075":    1.6,

	// Copper
	"C110": 1.0,
	"C101": 1.1,

	// Coatings
	"Epoxy Primer": 1.1,
	"Polyurethane": 1.3,
	"Zinc Rich":    1.5,
	"Alkyd":        0.9,
}

// BaseRates returns a copy of the built-in rate table, used for seeding the
// editable material_rates collection.
func BaseRates() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(baseRates))
	for typ, units := range baseRates {
		cp := make(map[string]float64, len(units))
		for u, r := range units {
			cp[u] = r
		}
		out[typ] = cp
	}
	return out
}

// GradeMultipliers returns a copy of the built-in grade multiplier table.
func GradeMultipliers() map[string]float64 {
	out := make(map[string]float64, len(gradeMultipliers))
	for g, m := range gradeMultipliers {
		out[g] = m
	}
	return out
}

// RateTable resolves material unit rates. The zero value reads the built-in
// tables; NewRateTable overlays stored overrides on top of them, which is how
// edits made through the rates endpoint reach pricing.
type RateTable struct {
	rates  map[string]map[string]float64
	grades map[string]float64
}

// NewRateTable overlays the given overrides on the built-in tables. Entries
// absent from the overrides keep their built-in values.
func NewRateTable(rateOverrides map[string]map[string]float64, gradeOverrides map[string]float64) RateTable {
	rates := BaseRates()
	for typ, units := range rateOverrides {
		if rates[typ] == nil {
			rates[typ] = make(map[string]float64, len(units))
		}
		for unit, rate := range units {
			rates[typ][unit] = rate
		}
	}
	grades := GradeMultipliers()
	for grade, mult := range gradeOverrides {
		grades[grade] = mult
	}
	return RateTable{rates: rates, grades: grades}
}

// MaterialRate derives the unit rate for a material. Multipliers compound
// multiplicatively in a fixed order: grade, steel thickness, EA size, bulk
// discount. Rounding to cents happens once, at the end.
func (t RateTable) MaterialRate(m CADMaterial) float64 {
	rateTable := t.rates
	if rateTable == nil {
		rateTable = baseRates
	}
	gradeTable := t.grades
	if gradeTable == nil {
		gradeTable = gradeMultipliers
	}

	typ := strings.ToLower(m.Type)
	unit := strings.ToLower(m.Unit)

	typeRates, ok := rateTable[typ]
	if !ok {
		typeRates = rateTable["other"]
	}
	rate, ok := typeRates[unit]
	if !ok {
		rate, ok = rateTable["other"][unit]
		if !ok {
			rate = 1
		}
	}

	if mult, ok := gradeTable[m.Grade]; ok {
		rate *= mult
	}

	if typ == "steel" && m.Thickness > 0 {
		rate *= math.Max(1, m.Thickness/8)
	}

	if unit == "ea" && m.Dimensions != nil {
		volume := m.Dimensions.Length * m.Dimensions.Width * m.Dimensions.Height / 1e6
		if volume > 0.1 {
			rate *= math.Max(1, math.Sqrt(volume)*2)
		}
	}

	if m.Quantity > 10 {
		rate *= 0.9
	} else if m.Quantity > 5 {
		rate *= 0.95
	}

	return math.Round(rate*100) / 100
}

// CalculateMaterialRate derives the unit rate from the built-in tables only.
func CalculateMaterialRate(m CADMaterial) float64 {
	return RateTable{}.MaterialRate(m)
}
