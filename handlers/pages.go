package handlers

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/services"
)

// HandleHomePage returns a handler that renders the upload form.
func HandleHomePage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		component := uploadPage()
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleConversionsPage returns a handler that renders the conversions table.
func HandleConversionsPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("conversions", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("pages: could not load conversions: %v", err)
			records = nil
		}
		component := conversionsPage(records)
		return component.Render(e.Request.Context(), e.Response)
	}
}

func uploadPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writePageHead(w, "CAD to BOQ Converter"); err != nil {
			return err
		}
		opts := services.DefaultOptions()
		// Each checkbox is paired with a hidden false field so unchecking it
		// still submits a value. FormValue reads the first value, so the
		// checkbox must come before its hidden partner.
		_, err := fmt.Fprintf(w, `<h1>CAD to BOQ Converter</h1>
<p>Upload a DWG or DXF drawing to generate a priced bill of quantities.</p>
<form method="post" action="/convert" enctype="multipart/form-data">
  <p><input type="file" name="file" accept=".dwg,.dxf" required> (max 50MB)</p>
  <fieldset>
    <legend>Options</legend>
    <label><input type="checkbox" name="include_labor" value="true" checked><input type="hidden" name="include_labor" value="false"> Include labor</label>
    <label><input type="checkbox" name="include_equipment" value="true" checked><input type="hidden" name="include_equipment" value="false"> Include equipment</label>
    <label><input type="checkbox" name="include_overhead" value="true" checked><input type="hidden" name="include_overhead" value="false"> Include overhead</label>
    <p><label>Labor rate <input type="number" name="labor_rate" step="0.01" value="%g"></label></p>
    <p><label>Equipment rate <input type="number" name="equipment_rate" step="0.01" value="%g"></label></p>
    <p><label>Overhead %% <input type="number" name="overhead_percentage" step="0.1" value="%g"></label></p>
    <p><label>Currency <input type="text" name="currency" maxlength="3" value="%s"></label></p>
  </fieldset>
  <p><button type="submit">Convert</button></p>
</form>
<p><a href="/conversions/page">View past conversions</a></p>
</body></html>`,
			opts.LaborRate, opts.EquipmentRate, opts.OverheadPercentage, opts.Currency)
		return err
	})
}

func conversionsPage(records []*core.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writePageHead(w, "Conversions"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h1>Conversions</h1>
<table border="1" cellpadding="4">
<tr><th>Source</th><th>Title</th><th>Complexity</th><th>Confidence</th><th>Total</th><th>Items</th><th>Export</th></tr>
`); err != nil {
			return err
		}
		for _, r := range records {
			_, err := fmt.Fprintf(w, `<tr><td>%s</td><td><a href="/conversions/%s">%s</a></td><td>%s</td><td>%d%%</td><td>%s</td><td>%d</td><td><a href="/conversions/%s/export/csv">CSV</a> <a href="/conversions/%s/export/excel">Excel</a> <a href="/conversions/%s/export/pdf">PDF</a></td></tr>
`,
				html.EscapeString(r.GetString("source_file")),
				r.Id,
				html.EscapeString(r.GetString("title")),
				r.GetString("complexity"),
				r.GetInt("confidence"),
				services.FormatMoney(r.GetFloat("total_cost"), r.GetString("currency")),
				r.GetInt("item_count"),
				r.Id, r.Id, r.Id)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>
<p><a href="/">New conversion</a></p>
</body></html>`)
		return err
	})
}

func writePageHead(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title></head><body>
`, html.EscapeString(title))
	return err
}
