package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// Setup programmatically creates/ensures the conversions, boq_line_items,
// material_rates and grade_multipliers collections exist.
func Setup(app *pocketbase.PocketBase) {
	conversions := ensureCollection(app, "conversions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "source_file", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.TextField{Name: "drawing_scale", Required: false})
		c.Fields.Add(&core.TextField{Name: "drawing_units", Required: false})
		c.Fields.Add(&core.JSONField{Name: "layers"})
		c.Fields.Add(&core.NumberField{Name: "total_area", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_volume", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_length", Required: false})
		c.Fields.Add(&core.NumberField{Name: "confidence", Required: false})
		c.Fields.Add(&core.NumberField{Name: "processing_ms", Required: false})
		c.Fields.Add(&core.TextField{Name: "complexity", Required: false})
		c.Fields.Add(&core.TextField{Name: "currency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "equipment_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overhead_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "item_count", Required: false})
		c.Fields.Add(&core.JSONField{Name: "options"})
		// Parsed drawing snapshot, kept so a conversion can be regenerated
		// with new options without re-uploading the file.
		c.Fields.Add(&core.JSONField{Name: "cad_data", MaxSize: 5 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "boq_line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "conversion",
			Required:      true,
			CollectionId:  conversions.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "item_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.Categories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "specifications", Required: false})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
	})

	ensureCollection(app, "material_rates", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "material_type",
			Required:  true,
			Values:    services.MaterialTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    services.MaterialUnits,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
	})

	ensureCollection(app, "grade_multipliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "grade", Required: true})
		c.Fields.Add(&core.NumberField{Name: "multiplier", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
