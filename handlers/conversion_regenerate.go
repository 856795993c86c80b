package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// HandleConversionRegenerate returns a handler that re-runs BOQ generation
// over the stored drawing snapshot with updated options. Existing line items
// are replaced.
func HandleConversionRegenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		record, err := app.FindRecordById("conversions", conversionID)
		if err != nil {
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		cadData, err := loadCADSnapshot(record)
		if err != nil {
			log.Printf("conversion_regenerate: bad snapshot for %s: %v", conversionID, err)
			return e.String(http.StatusInternalServerError, "Stored drawing data is unreadable")
		}

		// New form fields overlay the options stored with the conversion.
		base := storedOptions(record)
		opts := optionsFromForm(e.Request, base)
		if err := opts.Validate(); err != nil {
			return e.String(http.StatusBadRequest, fmt.Sprintf("Invalid options: %v", err))
		}

		result := services.GenerateBOQWithRates(cadData, &opts, loadRateTable(app))

		if err := deleteLineItems(app, conversionID); err != nil {
			log.Printf("conversion_regenerate: could not clear items for %s: %v", conversionID, err)
			return e.String(http.StatusInternalServerError, "Could not replace line items")
		}
		if err := saveLineItems(app, conversionID, result.Items); err != nil {
			log.Printf("conversion_regenerate: could not save items for %s: %v", conversionID, err)
			return e.String(http.StatusInternalServerError, "Could not replace line items")
		}

		optsJSON, err := json.Marshal(opts)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Could not store options")
		}
		record.Set("options", string(optsJSON))
		setSummaryFields(record, result, opts.Currency)
		if err := app.Save(record); err != nil {
			log.Printf("conversion_regenerate: could not update %s: %v", conversionID, err)
			return e.String(http.StatusInternalServerError, "Could not update conversion")
		}

		return e.JSON(http.StatusOK, conversionResponse(record, result))
	}
}

// loadCADSnapshot unmarshals the drawing data stored with a conversion.
func loadCADSnapshot(record *core.Record) (*services.CADBOQData, error) {
	raw := record.GetString("cad_data")
	if raw == "" {
		return nil, fmt.Errorf("conversion %s has no drawing snapshot", record.Id)
	}
	var data services.CADBOQData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshal drawing snapshot: %w", err)
	}
	return &data, nil
}

// storedOptions reads the options saved with a conversion, falling back to
// defaults when the record predates option storage or holds invalid JSON.
func storedOptions(record *core.Record) services.BOQGenerationOptions {
	opts := services.DefaultOptions()
	raw := record.GetString("options")
	if raw == "" {
		return opts
	}
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return services.DefaultOptions()
	}
	return opts
}

// deleteLineItems removes all line items belonging to a conversion.
func deleteLineItems(app *pocketbase.PocketBase, conversionID string) error {
	records, err := app.FindRecordsByFilter(
		"boq_line_items",
		"conversion = {:conversionId}", "", 0, 0,
		map[string]any{"conversionId": conversionID},
	)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := app.Delete(r); err != nil {
			return err
		}
	}
	return nil
}
