// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app, creates all collections and seeds the rate tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}

	return app
}

// CreateTestConversion creates a conversion record and returns it.
func CreateTestConversion(t *testing.T, app *pocketbase.PocketBase, sourceFile, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("conversions")
	if err != nil {
		t.Fatalf("failed to find conversions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("source_file", sourceFile)
	record.Set("title", title)
	record.Set("drawing_scale", "1:50")
	record.Set("drawing_units", "mm")
	record.Set("currency", "USD")
	record.Set("confidence", 70)
	record.Set("complexity", "Medium")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test conversion: %v", err)
	}

	return record
}

// CreateTestBOQLineItem creates a line item linked to a conversion.
func CreateTestBOQLineItem(t *testing.T, app *pocketbase.PocketBase, conversionID string, sortOrder int, description, category string, qty, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_line_items")
	if err != nil {
		t.Fatalf("failed to find boq_line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("conversion", conversionID)
	record.Set("sort_order", sortOrder)
	record.Set("item_number", formatItemNumber(sortOrder))
	record.Set("description", description)
	record.Set("qty", qty)
	record.Set("unit", "EA")
	record.Set("unit_rate", rate)
	record.Set("total_amount", qty*rate)
	record.Set("category", category)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// MultipartUpload builds a multipart body with one file field plus extra
// form fields, returning the body and the content type for the request.
func MultipartUpload(t *testing.T, fieldName, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func formatItemNumber(n int) string {
	return fmt.Sprintf("%d.0", n)
}
