package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/testhelpers"
)

// newTestRequestEvent wires a recorded request into a RequestEvent so a
// handler closure can be invoked directly, without routing.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	event := &core.RequestEvent{}
	event.App = app
	event.Request = req
	event.Response = rec
	return event
}

// convertTestFile uploads a small CAD file through the convert handler and
// returns the conversion record it persisted. Tests that exercise the
// regenerate or rate paths use this to get a realistic starting record.
func convertTestFile(t *testing.T, app *pocketbase.PocketBase, fileName string) *core.Record {
	t.Helper()

	handler := HandleConvert(app)
	body, ct := testhelpers.MultipartUpload(t, "file", fileName, []byte("binary"), nil)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	event := newTestRequestEvent(app, req, rec)

	if err := handler(event); err != nil {
		t.Fatalf("convert handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("convert returned %d: %s", rec.Code, rec.Body.String())
	}

	conversions, err := app.FindRecordsByFilter("conversions", "id != ''", "-created", 1, 0)
	if err != nil || len(conversions) == 0 {
		t.Fatalf("conversion record not found after convert: %v", err)
	}
	return conversions[0]
}
