package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleConversionDelete returns a handler that deletes a conversion. Line
// items are removed through the relation's cascade delete.
func HandleConversionDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		record, err := app.FindRecordById("conversions", conversionID)
		if err != nil {
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("conversion_delete: could not delete %s: %v", conversionID, err)
			return e.String(http.StatusInternalServerError, "Could not delete conversion")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": conversionID})
	}
}
