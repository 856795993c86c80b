package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"Item No.", "Description", "Qty", "Unit", "Rate", "Amount", "Category", "Specifications",
}

// GenerateCSV renders the BOQ rows as CSV. Fields containing commas or
// quotes are quote-wrapped by the writer, so descriptions round-trip through
// standard CSV readers. Rate and amount are formatted to 2 decimals.
func GenerateCSV(data ConversionExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range data.Rows {
		record := []string{
			r.ItemNumber,
			r.Description,
			formatQty(r.Qty),
			r.Unit,
			fmt.Sprintf("%.2f", r.Rate),
			fmt.Sprintf("%.2f", r.Amount),
			r.Category,
			r.Specifications,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", r.ItemNumber, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
