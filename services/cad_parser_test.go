package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

// dxfContent joins group code/value pairs into scanner input.
func dxfContent(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

func TestParseCADFile_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"drawing.pdf", "drawing.step", "drawing", "drawing.DXF.bak"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCADFile(context.Background(), name, strings.NewReader("data"))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseCADFile(%q) error = %v, want ErrUnsupportedFormat", name, err)
			}
		})
	}
}

func TestParseCADFile_ExtensionCaseInsensitive(t *testing.T) {
	data, err := ParseCADFile(context.Background(), "Drawing.DWG", strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}
	if data == nil {
		t.Fatal("ParseCADFile returned nil data")
	}
}

func TestParseCADFile_DWGKeywords(t *testing.T) {
	tests := []struct {
		name           string
		fileName       string
		expectTitle    string
		expectMaterial string
	}{
		{"piping keyword", "piping_layout_rev2.dwg", "Piping Layout", "Steel Pipe DN100 Sch40"},
		{"pipe keyword", "main_pipe_run.dwg", "Piping Layout", "Steel Pipe DN50 Sch40"},
		{"tank keyword", "storage_tank.dwg", "Storage Tank", "Steel Plate 10mm Bottom Course"},
		{"vessel keyword", "pressure_vessel.dwg", "Storage Tank", "Steel Plate 8mm Shell Course"},
		{"structural keyword", "structural_plan.dwg", "Structural Frame Assembly", "Structural Steel Beam H200x100"},
		{"frame keyword", "frame_a.dwg", "Structural Frame Assembly", "Steel Base Plate 400x400"},
		{"no keyword", "misc_detail.dwg", "General Fabrication", "Steel Plate 6mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ParseCADFile(context.Background(), tt.fileName, strings.NewReader(""))
			if err != nil {
				t.Fatalf("ParseCADFile returned error: %v", err)
			}
			if data.DrawingInfo.Title != tt.expectTitle {
				t.Errorf("title = %q, want %q", data.DrawingInfo.Title, tt.expectTitle)
			}
			found := false
			for _, m := range data.Materials {
				if m.Name == tt.expectMaterial {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("materials missing %q", tt.expectMaterial)
			}
		})
	}
}

func TestSyntheticCADData_CommonShape(t *testing.T) {
	data := SyntheticCADData("misc_detail.dwg")

	// 3 type-specific materials plus 4 consumables
	if len(data.Materials) != 7 {
		t.Errorf("material count = %d, want 7", len(data.Materials))
	}
	if len(data.Dimensions) != 3 {
		t.Errorf("dimension count = %d, want 3", len(data.Dimensions))
	}
	if len(data.Blocks) != 1 || data.Blocks[0].Name != "TITLE_BLOCK" {
		t.Errorf("blocks = %+v, want single TITLE_BLOCK", data.Blocks)
	}
	if data.DrawingInfo.Scale != "1:50" {
		t.Errorf("scale = %q, want 1:50", data.DrawingInfo.Scale)
	}
	if len(data.DrawingInfo.Layers) != 4 {
		t.Errorf("layer count = %d, want 4", len(data.DrawingInfo.Layers))
	}
	if data.TotalArea <= 0 || data.TotalLength <= 0 {
		t.Errorf("aggregates not populated: area %v, length %v", data.TotalArea, data.TotalLength)
	}
	if math.Abs(data.TotalVolume-data.TotalArea*0.1) > 0.001 {
		t.Errorf("volume = %v, want area*0.1 = %v", data.TotalVolume, data.TotalArea*0.1)
	}

	// Same file name yields the same drawing.
	again := SyntheticCADData("misc_detail.dwg")
	if again.DrawingInfo.Title != data.DrawingInfo.Title || len(again.Materials) != len(data.Materials) {
		t.Error("synthetic data is not deterministic for the same file name")
	}
}

func TestParseCADFile_DWGContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseCADFile(ctx, "frame.dwg", strings.NewReader(""))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestParseCADFile_DXFEntities(t *testing.T) {
	content := dxfContent(
		"0", "LWPOLYLINE",
		"8", "STEEL",
		"10", "3000.0",
		"20", "4000.0",
		"0", "CIRCLE",
		"8", "STEEL",
		"40", "500.0",
		"0", "LINE",
		"8", "0",
		"10", "600.0",
		"20", "800.0",
		"0", "DIMENSION",
		"8", "DIMENSIONS",
		"1", "6000",
		"10", "6000.0",
		"0", "BLOCK",
		"2", "TITLE_BLOCK",
		"10", "10.0",
		"20", "20.0",
	)

	data, err := ParseCADFile(context.Background(), "plan.dxf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}

	// Polyline and circle are both on STEEL, but differ in derived name/unit
	// only when layers map to different materials; here both map to
	// Structural Steel and merge into one entry.
	if len(data.Materials) != 1 {
		t.Fatalf("material count = %d, want 1 merged entry: %+v", len(data.Materials), data.Materials)
	}
	m := data.Materials[0]
	if m.Name != "Structural Steel" || m.Grade != "A36" {
		t.Errorf("material = %+v, want Structural Steel grade A36", m)
	}
	// Polyline length 5000mm → 5 m, plus circle area merged into the same
	// (name, type) bucket under the first-seen unit.
	wantQty := 5.0 + math.Pi*500*500
	if math.Abs(m.Quantity-wantQty) > 0.01 {
		t.Errorf("merged quantity = %v, want %v", m.Quantity, wantQty)
	}

	if len(data.Dimensions) != 1 {
		t.Fatalf("dimension count = %d, want 1", len(data.Dimensions))
	}
	d := data.Dimensions[0]
	if d.Value != 6000 || d.Type != "linear" || d.Unit != "mm" {
		t.Errorf("dimension = %+v", d)
	}

	if len(data.Blocks) != 1 || data.Blocks[0].Name != "TITLE_BLOCK" {
		t.Errorf("blocks = %+v, want TITLE_BLOCK", data.Blocks)
	}
	if data.Blocks[0].InsertPoint.X != 10 || data.Blocks[0].InsertPoint.Y != 20 {
		t.Errorf("block insert point = %+v, want (10, 20)", data.Blocks[0].InsertPoint)
	}

	// Total length: polyline 5000 + line hypot(600,800)=1000 → 6 m.
	if math.Abs(data.TotalLength-6) > 0.001 {
		t.Errorf("total length = %v, want 6", data.TotalLength)
	}
	wantArea := math.Pi * 500 * 500 / 1e6
	if math.Abs(data.TotalArea-wantArea) > 0.001 {
		t.Errorf("total area = %v, want %v", data.TotalArea, wantArea)
	}
	if math.Abs(data.TotalVolume-wantArea*100) > 0.001 {
		t.Errorf("total volume = %v, want area*100", data.TotalVolume)
	}

	if data.DrawingInfo.Title != "plan" {
		t.Errorf("title = %q, want %q", data.DrawingInfo.Title, "plan")
	}
	wantLayers := []string{"STEEL", "0", "DIMENSIONS"}
	if len(data.DrawingInfo.Layers) != len(wantLayers) {
		t.Fatalf("layers = %v, want %v", data.DrawingInfo.Layers, wantLayers)
	}
	for i, l := range wantLayers {
		if data.DrawingInfo.Layers[i] != l {
			t.Errorf("layer %d = %q, want %q (first-seen order)", i, data.DrawingInfo.Layers[i], l)
		}
	}
}

func TestParseCADFile_DXFLayerMaterials(t *testing.T) {
	tests := []struct {
		layer      string
		expectName string
		expectType string
	}{
		{"CONCRETE-FOUND", "Concrete", "concrete"},
		{"aluminum_trim", "Aluminum", "aluminum"},
		{"COPPER_BUS", "Copper", "copper"},
	}

	for _, tt := range tests {
		t.Run(tt.layer, func(t *testing.T) {
			content := dxfContent(
				"0", "LWPOLYLINE",
				"8", tt.layer,
				"10", "1000.0",
				"20", "0.0",
			)
			data, err := ParseCADFile(context.Background(), "layers.dxf", strings.NewReader(content))
			if err != nil {
				t.Fatalf("ParseCADFile returned error: %v", err)
			}
			if len(data.Materials) != 1 {
				t.Fatalf("material count = %d, want 1", len(data.Materials))
			}
			if data.Materials[0].Name != tt.expectName || data.Materials[0].Type != tt.expectType {
				t.Errorf("material = %+v, want %s/%s", data.Materials[0], tt.expectName, tt.expectType)
			}
		})
	}
}

func TestParseCADFile_DXFUnknownLayerProducesNoMaterial(t *testing.T) {
	content := dxfContent(
		"0", "LWPOLYLINE",
		"8", "ELECTRICAL",
		"10", "1000.0",
		"20", "0.0",
	)
	data, err := ParseCADFile(context.Background(), "wiring.dxf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}
	if len(data.Materials) != 0 {
		t.Errorf("materials = %+v, want none for unrecognized layer", data.Materials)
	}
	// The entity still contributes to geometry totals.
	if math.Abs(data.TotalLength-1) > 0.001 {
		t.Errorf("total length = %v, want 1", data.TotalLength)
	}
}

func TestParseCADFile_DXFNonNumericDimensionSkipped(t *testing.T) {
	content := dxfContent(
		"0", "DIMENSION",
		"8", "DIMENSIONS",
		"1", "TYP.",
	)
	data, err := ParseCADFile(context.Background(), "notes.dxf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}
	if len(data.Dimensions) != 0 {
		t.Errorf("dimensions = %+v, want none for non-numeric text", data.Dimensions)
	}
}

func TestParseCADFile_DXFReadErrorFallsBack(t *testing.T) {
	data, err := ParseCADFile(context.Background(), "tank_detail.dxf", iotest.ErrReader(errors.New("disk error")))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v, want synthetic fallback", err)
	}
	if data.DrawingInfo.Title != "Storage Tank" {
		t.Errorf("fallback title = %q, want keyword-derived %q", data.DrawingInfo.Title, "Storage Tank")
	}
}

func TestParseCADFile_DXFEmptyContent(t *testing.T) {
	data, err := ParseCADFile(context.Background(), "empty.dxf", strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}
	if len(data.Materials) != 0 || len(data.Dimensions) != 0 {
		t.Errorf("empty content produced materials %v dimensions %v", data.Materials, data.Dimensions)
	}
	if data.DrawingInfo.Title != "empty" {
		t.Errorf("title = %q, want %q", data.DrawingInfo.Title, "empty")
	}
}

func TestParseCADFile_DWGTakesDecodeDelay(t *testing.T) {
	start := time.Now()
	_, err := ParseCADFile(context.Background(), "frame.dwg", strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCADFile returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < dwgDecodeDelay {
		t.Errorf("DWG parse returned after %v, want at least %v", elapsed, dwgDecodeDelay)
	}
}
