package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_BasicBOQ(t *testing.T) {
	result, err := GenerateExcel(sampleExportData())
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	// Check sheet name
	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Storage Tank" {
		t.Errorf("expected sheet name 'Storage Tank', got %v", sheets)
	}

	// Check title cell
	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Storage Tank" {
		t.Errorf("expected title 'Storage Tank', got %q", title)
	}

	// Row 6 = first data row
	itemNo, _ := f.GetCellValue(sheets[0], "A6")
	if itemNo != "1.0" {
		t.Errorf("first item number = %q, want '1.0'", itemNo)
	}
	desc, _ := f.GetCellValue(sheets[0], "B6")
	if desc != "Steel Plate, 10mm - Grade A36" {
		t.Errorf("first description = %q", desc)
	}
	amount, _ := f.GetCellValue(sheets[0], "F6")
	if amount != "USD 2,400.00" {
		t.Errorf("first amount = %q, want 'USD 2,400.00'", amount)
	}
}

func TestGenerateExcel_EmptyItems(t *testing.T) {
	data := sampleExportData()
	data.Rows = nil

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_LongTitle(t *testing.T) {
	data := sampleExportData()
	data.Title = "This is a very long title that exceeds thirty one characters"

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name exceeds 31 chars: %d", len(sheets[0]))
	}
}

func TestGenerateExcel_EmptyTitle(t *testing.T) {
	data := sampleExportData()
	data.Title = ""

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheets[0] != "BOQ" {
		t.Errorf("expected default sheet name 'BOQ', got %q", sheets[0])
	}
}

func TestGenerateExcel_SummaryRows(t *testing.T) {
	data := sampleExportData()

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]

	// 2 data rows end at row 7, blank row, summary starts at row 9.
	label, _ := f.GetCellValue(sheet, "E9")
	if label != "Material Cost:" {
		t.Errorf("first summary label = %q, want 'Material Cost:'", label)
	}
	total, _ := f.GetCellValue(sheet, "F13")
	if total != "USD 2,775.00" {
		t.Errorf("total cost cell = %q, want 'USD 2,775.00'", total)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
