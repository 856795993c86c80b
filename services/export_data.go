package services

// ConversionExportRow is a single line of an exported BOQ.
type ConversionExportRow struct {
	ItemNumber     string
	Description    string
	Qty            float64
	Unit           string
	Rate           float64
	Amount         float64
	Category       string
	Specifications string
	Remarks        string
}

// ConversionExportData holds everything the CSV/Excel/PDF exporters need.
type ConversionExportData struct {
	Title         string
	SourceFile    string
	Currency      string
	GeneratedDate string
	Rows          []ConversionExportRow
	Summary       BOQSummary
	Confidence    int
}

// BuildExportData maps a generation result into the exporter view.
func BuildExportData(result *BOQGenerationResult, title, currency string) ConversionExportData {
	rows := make([]ConversionExportRow, 0, len(result.Items))
	for _, it := range result.Items {
		rows = append(rows, ConversionExportRow{
			ItemNumber:     it.ItemNumber,
			Description:    it.Description,
			Qty:            it.Quantity,
			Unit:           it.Unit,
			Rate:           it.UnitRate,
			Amount:         it.TotalAmount,
			Category:       it.Category,
			Specifications: it.Specifications,
			Remarks:        it.Remarks,
		})
	}
	return ConversionExportData{
		Title:         title,
		SourceFile:    result.Metadata.SourceFile,
		Currency:      currency,
		GeneratedDate: result.Metadata.GeneratedAt.Format("02 Jan 2006"),
		Rows:          rows,
		Summary:       result.Summary,
		Confidence:    result.Metadata.Confidence,
	}
}
