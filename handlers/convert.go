package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// maxUploadBytes is the advisory upload limit for CAD files.
const maxUploadBytes = 50 << 20

// parseTimeout bounds how long a single parse may take. Expiry is treated
// the same as a parse failure: the synthetic fallback data is used and the
// request continues to BOQ generation.
const parseTimeout = 30 * time.Second

// HandleConvert returns a handler that accepts a CAD file upload, runs the
// parse/generate pipeline and persists the conversion with its line items.
func HandleConvert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("convert: could not parse multipart form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid upload")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Missing file field")
		}
		defer file.Close()

		opts := optionsFromForm(e.Request, services.DefaultOptions())
		if err := opts.Validate(); err != nil {
			return e.String(http.StatusBadRequest, fmt.Sprintf("Invalid options: %v", err))
		}

		ctx, cancel := context.WithTimeout(e.Request.Context(), parseTimeout)
		defer cancel()

		cadData, err := parseWithFallback(ctx, header.Filename, file)
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedFormat) {
				return e.String(http.StatusBadRequest, "Unsupported file format: only .dwg and .dxf are accepted")
			}
			log.Printf("convert: parse failed for %s: %v", header.Filename, err)
			return e.String(http.StatusInternalServerError, "Conversion failed")
		}

		result := services.GenerateBOQWithRates(cadData, &opts, loadRateTable(app))

		record, err := saveConversion(app, header.Filename, cadData, result, opts)
		if err != nil {
			log.Printf("convert: could not save conversion for %s: %v", header.Filename, err)
			return e.String(http.StatusInternalServerError, "Could not save conversion")
		}

		return e.JSON(http.StatusOK, conversionResponse(record, result))
	}
}

type parseOutcome struct {
	data *services.CADBOQData
	err  error
}

// parseWithFallback races the parser against the deadline. Timeouts degrade
// to the same synthetic data path as malformed content; only the unsupported
// format error propagates.
func parseWithFallback(ctx context.Context, fileName string, file io.Reader) (*services.CADBOQData, error) {
	ch := make(chan parseOutcome, 1)
	go func() {
		data, err := services.ParseCADFile(ctx, fileName, file)
		ch <- parseOutcome{data, err}
	}()

	select {
	case out := <-ch:
		if out.err != nil {
			if errors.Is(out.err, services.ErrUnsupportedFormat) {
				return nil, out.err
			}
			log.Printf("convert: parse degraded for %s: %v", fileName, out.err)
			return services.SyntheticCADData(fileName), nil
		}
		return out.data, nil
	case <-ctx.Done():
		log.Printf("convert: parse timed out for %s", fileName)
		return services.SyntheticCADData(fileName), nil
	}
}

// optionsFromForm overlays form fields on the given base options. Fields
// absent from the form keep their base values.
func optionsFromForm(r *http.Request, base services.BOQGenerationOptions) services.BOQGenerationOptions {
	o := base
	if v := r.FormValue("include_labor"); v != "" {
		o.IncludeLabor = parseBool(v)
	}
	if v := r.FormValue("include_equipment"); v != "" {
		o.IncludeEquipment = parseBool(v)
	}
	if v := r.FormValue("include_overhead"); v != "" {
		o.IncludeOverhead = parseBool(v)
	}
	if v := r.FormValue("labor_rate"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			o.LaborRate = f
		}
	}
	if v := r.FormValue("equipment_rate"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			o.EquipmentRate = f
		}
	}
	if v := r.FormValue("overhead_percentage"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			o.OverheadPercentage = f
		}
	}
	if v := r.FormValue("profit_margin"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			o.ProfitMargin = f
		}
	}
	if v := r.FormValue("currency"); v != "" {
		o.Currency = strings.ToUpper(strings.TrimSpace(v))
	}
	return o
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// saveConversion persists the conversion record and one record per BOQ line
// item. The parsed drawing snapshot and the options are stored as JSON so
// the conversion can be regenerated later.
func saveConversion(
	app *pocketbase.PocketBase,
	sourceFile string,
	cadData *services.CADBOQData,
	result *services.BOQGenerationResult,
	opts services.BOQGenerationOptions,
) (*core.Record, error) {
	conversionsCol, err := app.FindCollectionByNameOrId("conversions")
	if err != nil {
		return nil, fmt.Errorf("find conversions collection: %w", err)
	}

	cadJSON, err := json.Marshal(cadData)
	if err != nil {
		return nil, fmt.Errorf("marshal cad data: %w", err)
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	layersJSON, err := json.Marshal(cadData.DrawingInfo.Layers)
	if err != nil {
		return nil, fmt.Errorf("marshal layers: %w", err)
	}

	record := core.NewRecord(conversionsCol)
	record.Set("source_file", sourceFile)
	record.Set("title", cadData.DrawingInfo.Title)
	record.Set("drawing_scale", cadData.DrawingInfo.Scale)
	record.Set("drawing_units", cadData.DrawingInfo.Units)
	record.Set("layers", string(layersJSON))
	record.Set("total_area", cadData.TotalArea)
	record.Set("total_volume", cadData.TotalVolume)
	record.Set("total_length", cadData.TotalLength)
	record.Set("options", string(optsJSON))
	record.Set("cad_data", string(cadJSON))
	setSummaryFields(record, result, opts.Currency)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save conversion: %w", err)
	}

	if err := saveLineItems(app, record.Id, result.Items); err != nil {
		return nil, err
	}

	return record, nil
}

// setSummaryFields writes the generation summary onto a conversion record.
func setSummaryFields(record *core.Record, result *services.BOQGenerationResult, currency string) {
	record.Set("confidence", result.Metadata.Confidence)
	record.Set("processing_ms", result.Metadata.ProcessingMS)
	record.Set("complexity", result.Metadata.ComplexityName)
	record.Set("currency", currency)
	record.Set("material_cost", result.Summary.MaterialCost)
	record.Set("labor_cost", result.Summary.LaborCost)
	record.Set("equipment_cost", result.Summary.EquipmentCost)
	record.Set("overhead_cost", result.Summary.OverheadCost)
	record.Set("total_cost", result.Summary.TotalCost)
	record.Set("item_count", result.Summary.ItemCount)
}

// saveLineItems persists one boq_line_items record per generated item.
func saveLineItems(app *pocketbase.PocketBase, conversionID string, items []services.BOQItem) error {
	itemsCol, err := app.FindCollectionByNameOrId("boq_line_items")
	if err != nil {
		return fmt.Errorf("find boq_line_items collection: %w", err)
	}

	for i, it := range items {
		itemRecord := core.NewRecord(itemsCol)
		itemRecord.Set("conversion", conversionID)
		itemRecord.Set("sort_order", i+1)
		itemRecord.Set("item_number", it.ItemNumber)
		itemRecord.Set("description", it.Description)
		itemRecord.Set("qty", it.Quantity)
		itemRecord.Set("unit", it.Unit)
		itemRecord.Set("unit_rate", it.UnitRate)
		itemRecord.Set("total_amount", it.TotalAmount)
		itemRecord.Set("category", it.Category)
		itemRecord.Set("specifications", it.Specifications)
		itemRecord.Set("remarks", it.Remarks)
		if err := app.Save(itemRecord); err != nil {
			return fmt.Errorf("save line item %s: %w", it.ItemNumber, err)
		}
	}
	return nil
}

// conversionResponse builds the JSON payload returned from convert and
// regenerate requests.
func conversionResponse(record *core.Record, result *services.BOQGenerationResult) map[string]any {
	return map[string]any{
		"id":         record.Id,
		"sourceFile": record.GetString("source_file"),
		"title":      record.GetString("title"),
		"currency":   record.GetString("currency"),
		"complexity": result.Metadata.ComplexityName,
		"items":      result.Items,
		"summary":    result.Summary,
		"metadata":   result.Metadata,
	}
}
