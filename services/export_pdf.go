package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document from the export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ConversionExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data)
	addPDFTableHeader(m)
	for _, r := range data.Rows {
		addPDFTableRow(m, r, data.Currency)
	}
	addPDFSummary(m, data)
	addPDFFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPDFHeader adds the title, source file, and date to the PDF.
func addPDFHeader(m core.Maroto, data ConversionExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Source: %s", data.SourceFile), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addPDFTableHeader adds the column header row for the BOQ table.
func addPDFTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("Item No.", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Rate", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Category", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addPDFTableRow adds a single data row, shaded by category.
func addPDFTableRow(m core.Maroto, r ConversionExportRow, currency string) {
	var cellStyle *props.Cell
	switch r.Category {
	case CategoryLabor, CategoryEquipment:
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case CategoryOther, CategorySubcontract:
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colItemNo := col.New(1).Add(text.New(r.ItemNumber, baseText))
	colDesc := col.New(4).Add(text.New(r.Description, leftText))
	colQty := col.New(1).Add(text.New(formatQty(r.Qty), rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colRate := col.New(2).Add(text.New(FormatMoney(r.Rate, currency), rightText))
	colAmount := col.New(2).Add(text.New(FormatMoney(r.Amount, currency), rightText))
	colCategory := col.New(1).Add(text.New(r.Category, baseText))

	if cellStyle != nil {
		colItemNo = colItemNo.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colRate = colRate.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
		colCategory = colCategory.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colItemNo,
			colDesc,
			colQty,
			colUnit,
			colRate,
			colAmount,
			colCategory,
		),
	)
}

// addPDFSummary adds the cost breakdown section at the bottom of the PDF.
func addPDFSummary(m core.Maroto, data ConversionExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	lines := []struct {
		label string
		value float64
	}{
		{"Material Cost", data.Summary.MaterialCost},
		{"Labor Cost", data.Summary.LaborCost},
		{"Equipment Cost", data.Summary.EquipmentCost},
		{"Overhead", data.Summary.OverheadCost},
		{"Total Cost", data.Summary.TotalCost},
	}
	for _, s := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(s.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatMoney(s.value, data.Currency), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addPDFFooter adds the confidence and generated-date lines at the bottom.
func addPDFFooter(m core.Maroto, data ConversionExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Estimate confidence: %d%%, generated on %s from %s",
						data.Confidence, data.GeneratedDate, data.SourceFile),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
