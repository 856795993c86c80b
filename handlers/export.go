package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// buildConversionExportData fetches a conversion and its line items,
// returning the view struct shared by the CSV, Excel and PDF exporters.
func buildConversionExportData(app *pocketbase.PocketBase, conversionID string) (services.ConversionExportData, error) {
	record, err := app.FindRecordById("conversions", conversionID)
	if err != nil {
		return services.ConversionExportData{}, fmt.Errorf("conversion not found: %w", err)
	}

	itemRecords, err := app.FindRecordsByFilter(
		"boq_line_items",
		"conversion = {:conversionId}", "sort_order", 0, 0,
		map[string]any{"conversionId": conversionID},
	)
	if err != nil {
		itemRecords = nil
	}

	rows := make([]services.ConversionExportRow, 0, len(itemRecords))
	for _, r := range itemRecords {
		rows = append(rows, services.ConversionExportRow{
			ItemNumber:     r.GetString("item_number"),
			Description:    r.GetString("description"),
			Qty:            r.GetFloat("qty"),
			Unit:           r.GetString("unit"),
			Rate:           r.GetFloat("unit_rate"),
			Amount:         r.GetFloat("total_amount"),
			Category:       r.GetString("category"),
			Specifications: r.GetString("specifications"),
			Remarks:        r.GetString("remarks"),
		})
	}

	generatedDate := "-"
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		generatedDate = dt.Time().Format("02 Jan 2006")
	}

	title := record.GetString("title")
	if title == "" {
		title = record.GetString("source_file")
	}

	return services.ConversionExportData{
		Title:         title,
		SourceFile:    record.GetString("source_file"),
		Currency:      record.GetString("currency"),
		GeneratedDate: generatedDate,
		Rows:          rows,
		Summary: services.BOQSummary{
			MaterialCost:  record.GetFloat("material_cost"),
			LaborCost:     record.GetFloat("labor_cost"),
			EquipmentCost: record.GetFloat("equipment_cost"),
			OverheadCost:  record.GetFloat("overhead_cost"),
			TotalCost:     record.GetFloat("total_cost"),
			ItemCount:     record.GetInt("item_count"),
		},
		Confidence: record.GetInt("confidence"),
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleExportCSV returns a handler that generates and downloads the BOQ as CSV.
func HandleExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		data, err := buildConversionExportData(app, conversionID)
		if err != nil {
			log.Printf("export_csv: %v", err)
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		csvBytes, err := services.GenerateCSV(data)
		if err != nil {
			log.Printf("export_csv: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.csv", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}

// HandleExportExcel returns a handler that generates and downloads the BOQ as Excel.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		data, err := buildConversionExportData(app, conversionID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF returns a handler that generates and downloads the BOQ as PDF.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		conversionID := e.Request.PathValue("id")
		if conversionID == "" {
			return e.String(http.StatusBadRequest, "Missing conversion ID")
		}

		data, err := buildConversionExportData(app, conversionID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Conversion not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
