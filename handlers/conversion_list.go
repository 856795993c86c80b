package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleConversionList returns a handler that lists all conversions, newest
// first, as JSON summaries.
func HandleConversionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("conversions", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("conversion_list: could not load conversions: %v", err)
			records = nil
		}

		summaries := make([]map[string]any, 0, len(records))
		for _, r := range records {
			summaries = append(summaries, conversionSummary(r))
		}
		return e.JSON(http.StatusOK, map[string]any{
			"conversions": summaries,
			"total":       len(summaries),
		})
	}
}

// conversionSummary maps a conversion record to its list representation.
func conversionSummary(r *core.Record) map[string]any {
	return map[string]any{
		"id":         r.Id,
		"sourceFile": r.GetString("source_file"),
		"title":      r.GetString("title"),
		"currency":   r.GetString("currency"),
		"complexity": r.GetString("complexity"),
		"confidence": r.GetInt("confidence"),
		"totalCost":  r.GetFloat("total_cost"),
		"itemCount":  r.GetInt("item_count"),
		"created":    r.GetDateTime("created"),
	}
}
