package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// loadRateTable builds the pricing tables from the stored rate records, so
// rates edited through HandleRateUpdate apply to subsequent generations.
// Records that cannot be read leave the built-in values in place.
func loadRateTable(app *pocketbase.PocketBase) services.RateTable {
	rates := make(map[string]map[string]float64)
	rateRecords, err := app.FindRecordsByFilter("material_rates", "id != ''", "", 0, 0)
	if err != nil {
		log.Printf("rates: could not load material rates for pricing: %v", err)
	}
	for _, r := range rateRecords {
		typ := r.GetString("material_type")
		if rates[typ] == nil {
			rates[typ] = make(map[string]float64)
		}
		rates[typ][r.GetString("unit")] = r.GetFloat("rate")
	}

	grades := make(map[string]float64)
	gradeRecords, err := app.FindRecordsByFilter("grade_multipliers", "id != ''", "", 0, 0)
	if err != nil {
		log.Printf("rates: could not load grade multipliers for pricing: %v", err)
	}
	for _, r := range gradeRecords {
		grades[r.GetString("grade")] = r.GetFloat("multiplier")
	}

	return services.NewRateTable(rates, grades)
}

// HandleRateList returns a handler that lists the seeded material rates and
// grade multipliers.
func HandleRateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateRecords, err := app.FindRecordsByFilter("material_rates", "id != ''", "material_type,unit", 0, 0)
		if err != nil {
			log.Printf("rates: could not load material rates: %v", err)
			rateRecords = nil
		}
		gradeRecords, err := app.FindRecordsByFilter("grade_multipliers", "id != ''", "grade", 0, 0)
		if err != nil {
			log.Printf("rates: could not load grade multipliers: %v", err)
			gradeRecords = nil
		}

		rates := make([]map[string]any, 0, len(rateRecords))
		for _, r := range rateRecords {
			rates = append(rates, map[string]any{
				"id":           r.Id,
				"materialType": r.GetString("material_type"),
				"unit":         r.GetString("unit"),
				"rate":         r.GetFloat("rate"),
			})
		}

		grades := make([]map[string]any, 0, len(gradeRecords))
		for _, r := range gradeRecords {
			grades = append(grades, map[string]any{
				"id":         r.Id,
				"grade":      r.GetString("grade"),
				"multiplier": r.GetFloat("multiplier"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"materialRates":    rates,
			"gradeMultipliers": grades,
		})
	}
}

// HandleRateUpdate returns a handler that updates a single material rate.
func HandleRateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("id")
		if rateID == "" {
			return e.String(http.StatusBadRequest, "Missing rate ID")
		}

		record, err := app.FindRecordById("material_rates", rateID)
		if err != nil {
			return e.String(http.StatusNotFound, "Rate not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}
		rate, err := strconv.ParseFloat(e.Request.FormValue("rate"), 64)
		if err != nil || rate < 0 {
			return e.String(http.StatusBadRequest, "Rate must be a non-negative number")
		}

		record.Set("rate", rate)
		if err := app.Save(record); err != nil {
			log.Printf("rates: could not update rate %s: %v", rateID, err)
			return e.String(http.StatusInternalServerError, "Could not update rate")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           record.Id,
			"materialType": record.GetString("material_type"),
			"unit":         record.GetString("unit"),
			"rate":         record.GetFloat("rate"),
		})
	}
}
