package collections

import (
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// Seed populates the material_rates and grade_multipliers collections from
// the built-in pricing tables. It is a no-op when the collections already
// hold records, so edited rates survive restarts.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedMaterialRates(app); err != nil {
		return fmt.Errorf("seed material rates: %w", err)
	}
	if err := seedGradeMultipliers(app); err != nil {
		return fmt.Errorf("seed grade multipliers: %w", err)
	}
	return nil
}

func seedMaterialRates(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("material_rates")
	if err != nil {
		return fmt.Errorf("find material_rates collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0)
	if err == nil && len(existing) > 0 {
		return nil
	}

	for _, typ := range services.MaterialTypes {
		units := services.BaseRates()[typ]
		for _, unit := range services.MaterialUnits {
			rate, ok := units[unit]
			if !ok {
				continue
			}
			record := core.NewRecord(col)
			record.Set("material_type", typ)
			record.Set("unit", unit)
			record.Set("rate", rate)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("save rate %s/%s: %w", typ, unit, err)
			}
		}
	}
	return nil
}

func seedGradeMultipliers(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("grade_multipliers")
	if err != nil {
		return fmt.Errorf("find grade_multipliers collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0)
	if err == nil && len(existing) > 0 {
		return nil
	}

	multipliers := services.GradeMultipliers()
	grades := make([]string, 0, len(multipliers))
	for g := range multipliers {
		grades = append(grades, g)
	}
	sort.Strings(grades)

	for _, grade := range grades {
		record := core.NewRecord(col)
		record.Set("grade", grade)
		record.Set("multiplier", multipliers[grade])
		if err := app.Save(record); err != nil {
			return fmt.Errorf("save grade %s: %w", grade, err)
		}
	}
	return nil
}
