package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleConversionView returns a handler that serves one conversion with
// all of its line items and the persisted summary.
func HandleConversionView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		record, err := app.FindRecordById("conversions", conversionID)
		if err != nil {
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		items, err := loadLineItems(app, conversionID)
		if err != nil {
			log.Printf("conversion_view: could not load items for %s: %v", conversionID, err)
			items = nil
		}

		detail := conversionSummary(record)
		detail["drawing"] = map[string]any{
			"scale":       record.GetString("drawing_scale"),
			"units":       record.GetString("drawing_units"),
			"totalArea":   record.GetFloat("total_area"),
			"totalVolume": record.GetFloat("total_volume"),
			"totalLength": record.GetFloat("total_length"),
		}
		detail["summary"] = map[string]any{
			"materialCost":  record.GetFloat("material_cost"),
			"laborCost":     record.GetFloat("labor_cost"),
			"equipmentCost": record.GetFloat("equipment_cost"),
			"overheadCost":  record.GetFloat("overhead_cost"),
			"totalCost":     record.GetFloat("total_cost"),
			"itemCount":     record.GetInt("item_count"),
		}
		detail["items"] = items

		return e.JSON(http.StatusOK, detail)
	}
}

// loadLineItems fetches a conversion's line items in emission order.
func loadLineItems(app *pocketbase.PocketBase, conversionID string) ([]map[string]any, error) {
	records, err := app.FindRecordsByFilter(
		"boq_line_items",
		"conversion = {:conversionId}", "sort_order", 0, 0,
		map[string]any{"conversionId": conversionID},
	)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(records))
	for _, r := range records {
		items = append(items, map[string]any{
			"id":             r.Id,
			"itemNumber":     r.GetString("item_number"),
			"description":    r.GetString("description"),
			"quantity":       r.GetFloat("qty"),
			"unit":           r.GetString("unit"),
			"unitRate":       r.GetFloat("unit_rate"),
			"totalAmount":    r.GetFloat("total_amount"),
			"category":       r.GetString("category"),
			"specifications": r.GetString("specifications"),
			"remarks":        r.GetString("remarks"),
		})
	}
	return items, nil
}
